package utils

import (
	"math/rand"

	"habitLoopAPI/internal/types/quote"
)

var motivationalQuotes = []quote.Quote{
	{Text: "Progress, not perfection.", Author: "Anonymous"},
	{Text: "Small steps every day lead to big changes.", Author: "Anonymous"},
	{Text: "You don't have to be great to get started, but you have to get started to be great.", Author: "Les Brown"},
	{Text: "The secret of getting ahead is getting started.", Author: "Mark Twain"},
	{Text: "Don't put off tomorrow what you can do today.", Author: "Benjamin Franklin"},
	{Text: "A journey of a thousand miles begins with a single step.", Author: "Lao Tzu"},
	{Text: "Success is the sum of small efforts repeated day in and day out.", Author: "Robert Collier"},
	{Text: "Lower the bar until you succeed.", Author: "Humble Habit"},
	{Text: "Consistency beats perfection.", Author: "Anonymous"},
	{Text: "Start where you are. Use what you have. Do what you can.", Author: "Arthur Ashe"},
	{Text: "Motivation gets you going, habit keeps you growing.", Author: "John C. Maxwell"},
	{Text: "We are what we repeatedly do.", Author: "Will Durant"},
}

// RandomQuote returns a motivational quote for the day view.
func RandomQuote() quote.Quote {
	return motivationalQuotes[rand.Intn(len(motivationalQuotes))]
}
