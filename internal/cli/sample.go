package cli

import "websafe-game-service/internal/domain"

// sampleScenarios provides a small built-in catalog covering every
// interaction type; swap the loader for the Postgres one in production.
func sampleScenarios() []domain.Scenario {
	return []domain.Scenario{
		{
			ID:              "upset-after-phone",
			Text:            "Your 10-year-old seems very upset after using their phone and avoids talking about it.",
			Context:         "The change in behavior is recent and coincides with increased phone use.",
			Difficulty:      domain.DifficultyBeginner,
			InteractionType: domain.InteractionMultipleChoice,
			Options: []string{
				"Give them space and wait until they decide to talk.",
				"Take the phone away until you find out what happened.",
				"Talk at a calm moment, show support and watch their behavior.",
				"Check their phone without permission.",
			},
			CorrectAnswer:     numberKey(2),
			CorrectFeedback:   "Approaching the situation calmly and showing support builds the trust a child needs to share what happens online.",
			IncorrectFeedback: "Taking the phone or checking it secretly can damage trust. Open, supportive conversation works better.",
			AdditionalInfo:    "Sudden sadness, anxiety or avoiding the phone can be early signs of cyberbullying.",
		},
		{
			ID:              "first-response",
			Text:            "How should you first respond when your teenager seems anxious about social media notifications?",
			Difficulty:      domain.DifficultyBeginner,
			InteractionType: domain.InteractionHotspot,
			HotspotQuestion: "Which approach is the recommended first step?",
			Hotspots: []domain.Hotspot{
				{ID: 1, X: 25, Y: 30, Size: 40, Label: "Impose strict screen-time limits immediately"},
				{ID: 2, X: 75, Y: 30, Size: 40, Label: "Talk openly about healthy social media habits"},
				{ID: 3, X: 25, Y: 70, Size: 40, Label: "Secretly monitor all of their activity", AlmostCorrect: false},
				{ID: 4, X: 75, Y: 70, Size: 40, Label: "Agree together on notification-free hours", AlmostCorrect: true},
			},
			CorrectAnswer:     numberKey(2),
			CorrectFeedback:   "Starting with an open conversation builds trust before any rules are set.",
			IncorrectFeedback: "Rules or monitoring without conversation rarely address the anxiety itself.",
		},
		{
			ID:              "new-social-network",
			Text:            "Your younger child asks to join a social network you have never heard of. Sort the possible reactions.",
			Difficulty:      domain.DifficultyIntermediate,
			InteractionType: domain.InteractionCategorySelection,
			Items: []domain.Item{
				{ID: "research", Content: "Research the platform and its risks"},
				{ID: "age", Content: "Check the minimum recommended age"},
				{ID: "privacy", Content: "Review the available privacy settings"},
				{ID: "monitor", Content: "Monitor everything without the child knowing"},
				{ID: "refuse", Content: "Refuse without any explanation"},
				{ID: "together", Content: "Explore the platform together"},
			},
			Categories: []domain.Category{
				{ID: "recommended", Name: "Recommended"},
				{ID: "not-recommended", Name: "Not recommended"},
			},
			CorrectAnswer: categoriesKey(map[string][]string{
				"recommended":     {"research", "age", "privacy", "together"},
				"not-recommended": {"monitor", "refuse"},
			}),
			CorrectFeedback:   "Researching, checking age limits, reviewing privacy and exploring together combine safety with digital education.",
			IncorrectFeedback: "Secret monitoring and unexplained refusals teach nothing about online safety and erode trust.",
		},
		{
			ID:              "offensive-group-messages",
			Text:            "A friend tells you they saw offensive messages about your child in a school group chat. Order your actions.",
			Difficulty:      domain.DifficultyIntermediate,
			InteractionType: domain.InteractionSequenceOrdering,
			SequenceEvents: []domain.SequenceEvent{
				{ID: "evidence", Content: "Capture and save evidence (screenshots, messages)"},
				{ID: "talk", Content: "Talk with your child about the situation"},
				{ID: "school", Content: "Inform the school"},
				{ID: "report", Content: "Report the content to the platform"},
				{ID: "follow", Content: "Keep following your child's wellbeing"},
			},
			CorrectAnswer:     idsKey("talk", "evidence", "school", "report", "follow"),
			CorrectFeedback:   "Talking first gives emotional support; then evidence, school, platform report and follow-up.",
			IncorrectFeedback: "Start by talking with your child before taking any external steps.",
		},
		{
			ID:              "screen-time-target",
			Text:            "Out of 100 risk points, how much of online-safety risk for children do experts attribute to unsupervised private messaging?",
			Difficulty:      domain.DifficultyAll,
			InteractionType: domain.InteractionSlider,
			SliderConfig:    &domain.SliderConfig{Min: 0, Max: 100, Step: 1, Label: "Risk share", Unit: "%"},
			CorrectAnswer:     numberKey(50),
			CorrectFeedback:   "About half of reported incidents begin in private or direct messages.",
			IncorrectFeedback: "Private messaging accounts for roughly half of reported incidents.",
		},
		{
			ID:              "school-incident-chat",
			Text:            "The school reports a cyberbullying case in your child's class. An online-safety counselor asks how you would handle it.",
			Difficulty:      domain.DifficultyAdvanced,
			InteractionType: domain.InteractionChat,
			ChatPrompt:      "Which points would you make sure to discuss with your child?",
			CorrectAnswer:   idsKey("conversation", "empathy", "report", "support", "prevention"),
			CorrectFeedback: "You covered the essentials: open conversation, empathy, reporting, support and prevention.",
			IncorrectFeedback: "Consider covering open conversation, empathy, how to report, offering support and prevention strategies.",
			AdditionalInfo:    "Class-wide incidents are a chance to teach children not to be passive bystanders.",
		},
		{
			ID:              "password-sharing-chat",
			Text:            "Your child says a best friend asked for their account password as 'proof of friendship'.",
			Difficulty:      domain.DifficultyBeginner,
			InteractionType: domain.InteractionChat,
			ChatPrompt:      "Walk through the conversation with your child.",
			ChatQuestions: []domain.ChatQuestion{
				{
					ID:     "share",
					Prompt: "Should passwords ever be shared with friends?",
					Options: []domain.ChatOption{
						{ID: "yes", Text: "Yes, with best friends it is fine"},
						{ID: "no", Text: "No, passwords stay private even among friends", Correct: true},
					},
				},
				{
					ID:     "response",
					Prompt: "What should your child tell the friend?",
					Options: []domain.ChatOption{
						{ID: "ignore", Text: "Nothing, just ignore them"},
						{ID: "explain", Text: "Explain that accounts are personal, like a house key", Correct: true},
						{ID: "fake", Text: "Give a fake password"},
					},
				},
			},
			CorrectAnswer:     idsKey("no", "explain"),
			CorrectFeedback:   "Right: passwords are personal and saying so clearly protects both the account and the friendship.",
			IncorrectFeedback: "Passwords should never be shared; help your child practice a clear, kind refusal.",
		},
	}
}

func numberKey(n float64) domain.AnswerKey {
	return domain.AnswerKey{Number: &n}
}

func idsKey(ids ...string) domain.AnswerKey {
	return domain.AnswerKey{IDs: ids}
}

func categoriesKey(cats map[string][]string) domain.AnswerKey {
	return domain.AnswerKey{Categories: cats}
}
