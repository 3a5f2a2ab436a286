package models

// DiscordUser is the subset of the Discord user object the bot needs.
type DiscordUser struct {
	ID       string
	Username string
}

// DiscordChannel is a guild text channel shown in the dashboard picker.
type DiscordChannel struct {
	ID       string
	Name     string
	Position int
}
