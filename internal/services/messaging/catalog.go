package messaging

// fallbackLanguage is used when a chat language has no catalog
const fallbackLanguage = "en"

// catalogs maps a language tag to its messages. A key may hold several
// variants; one is picked at random.
var catalogs = map[string]map[MessageKey][]string{
	"en": english,
}

var english = map[MessageKey][]string{
	KeyWelcome: {
		"Welcome to Crocodile! 🐊 One player explains a secret word, everyone else guesses it. Type `{prefix}game` to become the host.",
	},
	KeyHelp: {
		"**Crocodile** 🐊\n" +
			"`{prefix}game` start a round and become the host\n" +
			"`{prefix}end` end your round\n" +
			"`{prefix}score` show your score\n" +
			"`{prefix}top [n]` show the leaderboard\n" +
			"`{prefix}pay <amount> @user` give coins to a player\n" +
			"`{prefix}set_mode <easy|hard|adult>` change the game mode (admins)\n" +
			"`{prefix}lang <en|ta|hi>` change the language (admins)\n" +
			"`{prefix}settings` show the chat settings\n" +
			"Anything else you type during a round counts as a guess.",
	},
	KeyPing: {
		"Pong! 🏓 The bot is alive and responding!",
	},
	KeyGameStarted: {
		"{name} is the host now! 🎉 Press **See word** and start explaining.",
		"{name} took the stage! 🎤 Everybody else, start guessing.",
		"New round! {name} knows the word. Don't let them get away with gestures only. 🐊",
	},
	KeyGameEnded: {
		"{name} ended the round. Type `{prefix}game` to start a new one.",
	},
	KeyGameAlreadyRunning: {
		"A game is already running! {host} is explaining the word. Guess it instead of blabbering. 🤯",
	},
	KeyNoActiveGame: {
		"There is no game going on right now. Type `{prefix}game` to start one.",
	},
	KeyNotHost: {
		"Only the host can do that. Nice try though. 😏",
		"That button belongs to the host. Keep guessing!",
	},
	KeyViewWord: {
		"Your word is **{word}**. Don't say it out loud!",
	},
	KeyNextWord: {
		"New word: **{word}**",
	},
	KeyCorrectGuess: {
		"🎉 {winner} guessed **{word}** and becomes the next host! (+{score} score, +{coins} coins, +{xp} xp)",
		"Boom! {winner} nailed it, the word was **{word}**. {winner} explains next. (+{score} score, +{coins} coins, +{xp} xp)",
	},
	KeyHostReveal: {
		"{name}, you are the host! Don't reveal the word. 🙊",
		"Psst, {name}... hosts explain the word, they don't type it. 🤐",
	},
	KeyRewardFailed: {
		"{winner} is the next host, but I could not record the reward. It will not show up on the leaderboard.",
	},
	KeyBotCannotHost: {
		"Bots can't host a game.",
	},
	KeySettings: {
		"**Chat settings**\nLanguage: {language}\nGame mode: {mode}",
	},
	KeyGameModeSet: {
		"Game mode has been set to {mode}.",
	},
	KeyInvalidMode: {
		"Invalid game mode. Please choose from easy, hard, or adult.",
	},
	KeyLanguageSet: {
		"Chat language has been set to {language}.",
	},
	KeyInvalidLanguage: {
		"Unsupported language. Please choose from {languages}.",
	},
	KeyNotAdmin: {
		"Only chat admins can change the settings.",
	},
	KeyScore: {
		"{name}: **{score}** score, **{coins}** coins, **{xp}** xp",
	},
	KeyLeaderboardHeader: {
		"🏆 **Top players**",
	},
	KeyLeaderboardEntry: {
		"{rank}. {name}: {score}",
	},
	KeyLeaderboardEmpty: {
		"Nobody has scored in this chat yet. Start a game!",
	},
	KeyTransferDone: {
		"{from} gave {amount} coins to {to}. 💸",
	},
	KeyInsufficientFunds: {
		"You don't have enough coins for that.",
	},
	KeyInvalidAmount: {
		"The amount must be a positive number of coins.",
	},
	KeySelfTransfer: {
		"Paying yourself? Bold move, but no.",
	},
	KeyPayUsage: {
		"Usage: `{prefix}pay <amount> @user`",
	},
	KeyStorageError: {
		"I can't reach my storage right now. Please try again in a moment.",
	},
	KeyGenericError: {
		"Something went wrong! Please try again later.",
		"Oops! The crocodile swallowed that request. Try again later.",
	},
}
