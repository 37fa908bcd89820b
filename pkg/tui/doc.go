// Package tui is the terminal surface: a bubbletea program that owns the UI
// thread, hosts the router and draws each presented frame with lipgloss.
//
// The search bar chrome becomes a text input with route suggestions. Links
// and buttons in the body are focusable with tab and followed with enter.
// Markdown controls are rendered with glamour.
//
// The router is only touched from Update. Other goroutines navigate by
// sending NavigateMsg to the program.
package tui
