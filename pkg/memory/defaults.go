package memory

// CurrentSchemaVersion is the snapshot schema this build reads and writes.
// Version history:
//
//	1: initial catalog; the name prompt read "What is your name?"
//	2: name prompt reworded, canonical id "user-name"; address
//	    confirmation question added
const CurrentSchemaVersion = 2

// Fixed ids for the default catalog. These are stable across installations
// and releases; migrations target them.
const (
	QuestionUserName       QuestionID = "user-name"
	QuestionHomeAddress    QuestionID = "home-address"
	QuestionAddressConfirm QuestionID = "address-confirm"
	QuestionHouseName      QuestionID = "house-name"
	QuestionHousehold      QuestionID = "household-members"
	QuestionUnits          QuestionID = "preferred-units"
	QuestionBriefing       QuestionID = "morning-briefing"
)

// DefaultQuestions returns a fresh copy of the default question catalog.
// Seeded on first run and reapplied by ResetToDefaults.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:           QuestionUserName,
			Text:         "What should I call you?",
			Category:     CategoryPersonal,
			Priority:     PriorityHigh,
			Required:     true,
			DisplayOrder: 0,
		},
		{
			ID:           QuestionHomeAddress,
			Text:         "What is your home address?",
			Category:     CategoryLocation,
			Priority:     PriorityHigh,
			Required:     true,
			DisplayOrder: 1,
		},
		{
			ID:           QuestionAddressConfirm,
			Text:         "I found an address for you. Does it look right, or should I use a different one?",
			Category:     CategoryConfirmation,
			Priority:     PriorityHigh,
			Required:     false,
			DisplayOrder: 2,
		},
		{
			ID:           QuestionHouseName,
			Text:         "What would you like to name your home?",
			Category:     CategoryHouse,
			Priority:     PriorityMedium,
			Required:     true,
			DisplayOrder: 0,
		},
		{
			ID:           QuestionHousehold,
			Text:         "Who else lives with you?",
			Category:     CategoryPersonal,
			Priority:     PriorityMedium,
			Required:     false,
			DisplayOrder: 1,
		},
		{
			ID:           QuestionUnits,
			Text:         "Do you prefer metric or imperial units?",
			Category:     CategoryPreferences,
			Priority:     PriorityLow,
			Required:     true,
			DisplayOrder: 0,
		},
		{
			ID:           QuestionBriefing,
			Text:         "Would you like a morning briefing with weather and reminders?",
			Category:     CategoryPreferences,
			Priority:     PriorityLow,
			Required:     false,
			DisplayOrder: 1,
		},
	}
}

// defaultQuestion returns the default catalog entry for id.
func defaultQuestion(id QuestionID) (Question, bool) {
	for _, q := range DefaultQuestions() {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
