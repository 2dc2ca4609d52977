package server

// questionBank is the static fallback used when the AI provider chain is
// unavailable. It follows the same index layout the generator is asked for:
// 0-2 interest, 3-5 strength, 6-9 personality.
var questionBank = []QuizQuestion{
	{
		Text:     "Which of these would you happily spend a free afternoon on?",
		Category: "interest",
		Options: []QuizOption{
			{Text: "Building a small science experiment", Stream: "science"},
			{Text: "Tracking prices and running a mock budget", Stream: "commerce"},
			{Text: "Writing a story or painting", Stream: "arts"},
			{Text: "Repairing a gadget or stitching something", Stream: "vocational"},
		},
	},
	{
		Text:     "Which school subject do you look forward to most?",
		Category: "interest",
		Options: []QuizOption{
			{Text: "Physics or biology", Stream: "science"},
			{Text: "Mathematics applied to money", Stream: "commerce"},
			{Text: "History, languages or civics", Stream: "arts"},
			{Text: "Computer or craft practicals", Stream: "vocational"},
		},
	},
	{
		Text:     "Which news story would you read first?",
		Category: "interest",
		Options: []QuizOption{
			{Text: "A new medical breakthrough", Stream: "science"},
			{Text: "A startup raising funding", Stream: "commerce"},
			{Text: "A film or literature award", Stream: "arts"},
			{Text: "A new vocational training centre opening", Stream: "vocational"},
		},
	},
	{
		Text:     "What do teachers praise you for most often?",
		Category: "strength",
		Options: []QuizOption{
			{Text: "Solving tricky problems step by step", Stream: "science"},
			{Text: "Being organised with numbers and records", Stream: "commerce"},
			{Text: "Expressing ideas clearly", Stream: "arts"},
			{Text: "Working well with my hands", Stream: "vocational"},
		},
	},
	{
		Text:     "In a group project, which part do you naturally take over?",
		Category: "strength",
		Options: []QuizOption{
			{Text: "The research and analysis", Stream: "science"},
			{Text: "The budget and planning", Stream: "commerce"},
			{Text: "The writing and presentation", Stream: "arts"},
			{Text: "The building and assembling", Stream: "vocational"},
		},
	},
	{
		Text:     "Which exam format suits you best?",
		Category: "strength",
		Options: []QuizOption{
			{Text: "Numerical and reasoning questions", Stream: "science"},
			{Text: "Case studies with calculations", Stream: "commerce"},
			{Text: "Essays and long answers", Stream: "arts"},
			{Text: "Practical demonstrations", Stream: "vocational"},
		},
	},
	{
		Text:     "How do you prefer to work?",
		Category: "personality",
		Options: []QuizOption{
			{Text: "Quietly, digging deep into one problem", Stream: "science"},
			{Text: "In a team, negotiating and deciding", Stream: "commerce"},
			{Text: "Independently, with creative freedom", Stream: "arts"},
			{Text: "On my feet, seeing concrete results", Stream: "vocational"},
		},
	},
	{
		Text:     "What motivates you most about a future job?",
		Category: "personality",
		Options: []QuizOption{
			{Text: "Discovering or inventing something", Stream: "science"},
			{Text: "Growing a business or career ladder", Stream: "commerce"},
			{Text: "Influencing how people think and feel", Stream: "arts"},
			{Text: "Mastering a skill people depend on", Stream: "vocational"},
		},
	},
	{
		Text:     "When plans change suddenly, you usually...",
		Category: "personality",
		Options: []QuizOption{
			{Text: "Re-analyse and make a new plan", Stream: "science"},
			{Text: "Weigh the costs and pick the practical option", Stream: "commerce"},
			{Text: "Improvise and adapt creatively", Stream: "arts"},
			{Text: "Get on with whatever needs doing first", Stream: "vocational"},
		},
	},
	{
		Text:     "Which compliment would mean the most to you?",
		Category: "personality",
		Options: []QuizOption{
			{Text: "\"You think like a scientist\"", Stream: "science"},
			{Text: "\"You could run a company\"", Stream: "commerce"},
			{Text: "\"Your work moved me\"", Stream: "arts"},
			{Text: "\"You can fix anything\"", Stream: "vocational"},
		},
	},
}
