package service

// User-facing texts produced by the services.
const (
	msgFinishFlowFirst  = "You are in the middle of something. Finish it or send /cancel."
	msgUseButtonsOrType = "Please choose one of the buttons or type your answer."
	msgCancelled        = "Cancelled. What would you like to do next?"

	// Registration.
	msgRegAskLanguage        = "👋 Welcome! Let's set up your profile.\n\nStep 1 of 3. Choose your interface language:"
	msgRegAskName            = "Step 2 of 3. What is your full name?"
	msgRegAskEmail           = "Step 3 of 3. What is your email address?"
	msgRegConfirm            = "Please check your details:\n\nLanguage: %s\nName: %s\nEmail: %s\n\nIs everything correct?"
	msgRegUnknownLanguage    = "I don't know this language yet. Please pick one of the buttons."
	msgRegNameTooShort       = "The name must be at least 2 characters long. Please try again."
	msgRegInvalidEmail       = "That doesn't look like an email address (example: name@mail.com). Please try again."
	msgRegFinishFirst        = "Please finish the registration first."
	msgRegComplete           = "🎉 Thanks, %s! Registration is complete.\n\nUse ➕ Add topic to get your first words, then 📚 Study to review them."
	msgRegRequired           = "Registration is required to use the bot."
	msgTopicAskTopic         = "What topic do you want to learn words about? Type it or pick a suggestion:"
	msgTopicAskSource        = "Which language do you want to learn?"
	msgTopicAskTarget        = "Which language should the words be translated into?"
	msgTopicAskDesc          = "In which language should the definitions be written?"
	msgTopicAskLevel         = "What is your level?"
	msgTopicAskCount         = "How many words? Type a number from 1 to 100 or pick one:"
	msgTopicConfirm          = "Let's check:\n\nTopic: %s\nLearning: %s\nTranslation: %s\nDefinitions: %s\nLevel: %s\nWords: %d\n\nGenerate the words?"
	msgTopicInvalid          = "The topic must be between 2 and 100 characters. Please try again."
	msgTopicUnknownLanguage  = "I don't know this language. Please pick one of the buttons."
	msgTopicSameLanguage     = "The translation language must differ from the language you learn."
	msgTopicInvalidLevel     = "Please choose a level from A1 to C2."
	msgTopicInvalidCount     = "Please send a whole number from 1 to 100."
	msgTopicProviderFailed   = "❌ Could not generate words: %s"
	msgTopicNoVocabulary     = "😕 I couldn't extract vocabulary for \"%s\". Try another topic."
	msgTopicCardsNotSaved    = "❌ The words were generated but could not be saved. Please try again later."
	msgTopicAdded            = "✅ Added %d new cards for \"%s\"."
	msgTopicCancelled        = "Topic creation cancelled."
	msgTicketAskSubject      = "🆘 Support request.\n\nWhat is the subject? (at least 5 characters)"
	msgTicketAskMessage      = "Describe the problem (at least 10 characters):"
	msgTicketConfirm         = "Subject: %s\n\n%s\n\nSend this request?"
	msgTicketSubjectTooShort = "The subject must be at least 5 characters long."
	msgTicketMessageTooShort = "The message must be at least 10 characters long."
	msgTicketSubmitted       = "📨 Your request has been sent. We will answer you here."
	msgTicketCancelled       = "Support request cancelled."

	// Review.
	msgReviewAllCaughtUp   = "🎉 All caught up! No cards are due right now."
	msgReviewNoCards       = "You have no cards yet. Use ➕ Add topic or /add to create some."
	msgReviewCard          = "Card %d of %d · Box %d\n\n%s\n\nType the translation or tap «Show answer»."
	msgReviewAnswer        = "%s\n\n➡️ %s"
	msgReviewCorrect       = "✅ Correct!"
	msgReviewIncorrect     = "❌ Not quite."
	msgReviewClose         = "Almost! Check the spelling."
	msgReviewResult        = "%s\n\n%s → %s\nBox %d → %d. Next review in %s."
	msgReviewCardNotFound  = "Card not found, try again."
	msgReviewNoSession     = "There is no active review session. Send /study to start one."
	msgReviewAlreadyGraded = "This card has already been answered."
	msgReviewUseButtons    = "A review session is in progress. Please use the buttons below the card."
	msgReviewSummary       = "🏁 Session finished!\n\nReviewed: %d\nCorrect: %d\nAccuracy: %.0f%%\n\n%s"

	// Stats and cards.
	msgStats           = "📊 Your progress\n\nCards: %d\nDue now: %d\n\n%s"
	msgStatsNextReview = "\nNext review: %s"
	msgAddUsage        = "Usage: /add <word> or /add <word> - <translation>"
	msgAddLookupFailed = "I couldn't find a reliable translation for \"%s\". Add it with your own translation: /add %s - <translation>"
	msgAddProviderFail = "❌ Lookup failed: %s"
	msgAddNoLanguages  = "Add a topic first so I know which languages you study, or use /add <word> - <translation>."
	msgCardAdded       = "✅ Card added: %s → %s"
	msgNoTopics        = "You have no topics yet. Use ➕ Add topic to create one."
	msgTopicsHeader    = "📚 Your topics:\n"
	msgTopicsLine      = "\n• %s (%s → %s, %d words)"

	// Reminders.
	msgReminder          = "⏰ Time to review! %d cards are waiting for you."
	msgRemindersUsage    = "Usage: /reminders 09:00 20:30 or /reminders off\nCurrent: %s (timezone %s)"
	msgRemindersSet      = "⏰ Reminders set for %s (timezone %s)."
	msgRemindersOff      = "Reminders turned off."
	msgRemindersInvalid  = "Please send times as HH:MM, at most 6 per day."
	msgTimezoneUsage     = "Usage: /timezone Europe/Berlin or /timezone UTC+3\nCurrent: %s"
	msgTimezoneSet       = "🌍 Timezone set to %s."
	msgTimezoneInvalid   = "Unknown timezone. Examples: Europe/Berlin, UTC+3, -05:00."
	msgRemindersNoneSet  = "none"
	msgBoxDistribution   = "Boxes:"
	msgBoxDistributionLn = "\nBox %d (every %s): %d"
)
