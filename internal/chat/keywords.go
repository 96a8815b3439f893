package chat

// Command names recognized by the router.
const (
	CmdHelp           = "help"
	CmdCreateProject  = "create-project"
	CmdCreateActivity = "create-activity"
	CmdListProjects   = "list-projects"
	CmdProjectStatus  = "project-status"
)

// knownCommands is the fixed command registry.
var knownCommands = map[string]bool{
	CmdHelp:           true,
	CmdCreateProject:  true,
	CmdCreateActivity: true,
	CmdListProjects:   true,
	CmdProjectStatus:  true,
}

// activityKeywords matches create/add phrasings combined with the word
// "activité"/"activity" in either supported language.
var activityKeywords = []string{
	"créer une activité",
	"crée une activité",
	"nouvelle activité",
	"ajouter une activité",
	"create an activity",
	"add an activity",
	"new activity",
}

// casualCategory pairs one category with its keyword list. Categories are
// evaluated in declaration order and the first match wins; reordering this
// table changes observable behavior.
type casualCategory struct {
	category CasualCategory
	keywords []string
}

var casualCategories = []casualCategory{
	{CasualGreeting, []string{"bonjour", "salut", "hello", "hi", "hey", "coucou"}},
	{CasualWellbeing, []string{"ça va", "comment ça va", "how are you", "comment vas-tu", "what's up", "how do you do"}},
	{CasualThanks, []string{"merci", "thanks", "thank you"}},
	{CasualFarewell, []string{"au revoir", "bye", "bonne journée", "good day", "à bientôt", "see you"}},
	{CasualIntroduction, []string{"enchanté", "nice to meet you"}},
}
