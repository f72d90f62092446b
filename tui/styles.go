// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("205")
	optionColor = lipgloss.Color("63")
	mutedColor  = lipgloss.Color("241")
	errorColor  = lipgloss.Color("196")
	likeColor   = lipgloss.Color("220")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	optionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(optionColor).
			Padding(0, 2).
			Width(24).
			Align(lipgloss.Center)

	countStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	messageStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(accentColor)

	replyStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(mutedColor)

	likeStyle   = lipgloss.NewStyle().Foreground(likeColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	statusStyle = lipgloss.NewStyle().Foreground(errorColor)
	helpStyle   = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
)
