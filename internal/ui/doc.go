// Package ui implements the terminal interface components for Sap.
//
// The layout is a single full-width chat column between a one-line header
// and a one-line footer:
//
//	┌─────────────────────────────────────┐
//	│ header (title, mode, session)       │
//	├─────────────────────────────────────┤
//	│                                     │
//	│ chat transcript (viewport)          │
//	│                                     │
//	├─────────────────────────────────────┤
//	│ input (textarea)                    │
//	├─────────────────────────────────────┤
//	│ footer (keybindings)                │
//	└─────────────────────────────────────┘
//
// All size calculations go through the ViewContext singleton so that header,
// footer, and chat agree on dimensions. Styles are theme-driven: SetTheme
// swaps the palette and regenerates every style variable in place.
//
// Modals (file attach, theme picker, settings) are discriminated-union states
// behind the ModalState interface, overlaid over the chat when visible.
package ui
