package models

// DefaultColor is used when a routine is created without a color.
const DefaultColor = "#3b82f6"

// Category is a named, colored routine that can be logged on a day.
type Category struct {
	ID    string `json:"id" toml:"id"`
	Name  string `json:"name" toml:"name"`
	Color string `json:"color" toml:"color"`
}

// ExampleCategory is a routine offered to a fresh store.
type ExampleCategory struct {
	Name  string
	Color string
}

// ExampleCategories are seeded by `fitcal init` when no routine exists yet.
var ExampleCategories = []ExampleCategory{
	{Name: "💪 Strength Training", Color: "#3b82f6"},
	{Name: "🏃 Cardio Blast", Color: "#10b981"},
	{Name: "🧘 Yoga Flow", Color: "#8b5cf6"},
	{Name: "🔥 HIIT Training", Color: "#ef4444"},
	{Name: "🤸 Stretching", Color: "#f59e0b"},
	{Name: "🏊 Swimming", Color: "#06b6d4"},
	{Name: "😴 Rest Day", Color: "#6b7280"},
}
