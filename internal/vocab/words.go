package vocab

import "github.com/typedrill/typedrill/internal/model"

// catalogWords is the built-in vocabulary catalog: uncommon words with a
// definition and an example sentence suitable for typing practice.
var catalogWords = []model.VocabularyWord{
	// Easy
	{
		Word:       "serendipity",
		Definition: "finding something good without looking for it",
		Example:    "Meeting my best friend at that coffee shop was pure serendipity.",
		Difficulty: model.DifficultyEasy,
		Category:   "luck",
	},
	{
		Word:       "ubiquitous",
		Definition: "seeming to be everywhere at the same time",
		Example:    "Smartphones have become ubiquitous in modern society.",
		Difficulty: model.DifficultyEasy,
		Category:   "presence",
	},
	{
		Word:       "ephemeral",
		Definition: "lasting for a very short time",
		Example:    "The beauty of cherry blossoms is ephemeral, lasting only a few days.",
		Difficulty: model.DifficultyEasy,
		Category:   "time",
	},
	{
		Word:       "mellifluous",
		Definition: "sounding sweet and smooth, like honey",
		Example:    "Her mellifluous voice made the song even more beautiful.",
		Difficulty: model.DifficultyEasy,
		Category:   "sound",
	},
	{
		Word:       "perspicacious",
		Definition: "having a clear understanding of things",
		Example:    "The detective's perspicacious observations helped solve the case.",
		Difficulty: model.DifficultyEasy,
		Category:   "intelligence",
	},
	{
		Word:       "quintessential",
		Definition: "the perfect example of something",
		Example:    "This restaurant is the quintessential Italian dining experience.",
		Difficulty: model.DifficultyEasy,
		Category:   "perfection",
	},
	{
		Word:       "eloquent",
		Definition: "speaking in a clear and beautiful way",
		Example:    "Her eloquent speech moved everyone in the audience.",
		Difficulty: model.DifficultyEasy,
		Category:   "speech",
	},
	{
		Word:       "resilient",
		Definition: "able to recover quickly from difficult situations",
		Example:    "Children are surprisingly resilient when facing challenges.",
		Difficulty: model.DifficultyEasy,
		Category:   "strength",
	},
	{
		Word:       "authentic",
		Definition: "genuine and real, not fake",
		Example:    "The restaurant serves authentic Mexican cuisine.",
		Difficulty: model.DifficultyEasy,
		Category:   "truth",
	},
	{
		Word:       "innovative",
		Definition: "introducing new ideas or methods",
		Example:    "The company's innovative approach changed the industry.",
		Difficulty: model.DifficultyEasy,
		Category:   "creativity",
	},

	// Medium
	{
		Word:       "egregious",
		Definition: "something that's outrageously bad or shocking",
		Example:    "The company's egregious mistake cost them millions of dollars.",
		Difficulty: model.DifficultyMedium,
		Category:   "bad",
	},
	{
		Word:       "pragmatic",
		Definition: "dealing with things in a practical way",
		Example:    "We need a pragmatic solution to this complex problem.",
		Difficulty: model.DifficultyMedium,
		Category:   "practical",
	},
	{
		Word:       "diligent",
		Definition: "working hard and being careful about details",
		Example:    "The diligent student always completed her homework on time.",
		Difficulty: model.DifficultyMedium,
		Category:   "work",
	},
	{
		Word:       "concise",
		Definition: "saying what you need to say in few words",
		Example:    "Please give me a concise summary of the meeting.",
		Difficulty: model.DifficultyMedium,
		Category:   "communication",
	},
	{
		Word:       "versatile",
		Definition: "able to do many different things well",
		Example:    "This versatile tool can be used for multiple purposes.",
		Difficulty: model.DifficultyMedium,
		Category:   "ability",
	},
	{
		Word:       "profound",
		Definition: "having deep meaning or importance",
		Example:    "The book had a profound impact on my thinking.",
		Difficulty: model.DifficultyMedium,
		Category:   "depth",
	},
	{
		Word:       "tenacious",
		Definition: "not giving up easily, holding on tightly",
		Example:    "Her tenacious spirit helped her overcome many obstacles.",
		Difficulty: model.DifficultyMedium,
		Category:   "persistence",
	},
	{
		Word:       "astute",
		Definition: "clever and good at understanding situations",
		Example:    "The astute businessman saw the opportunity before others did.",
		Difficulty: model.DifficultyMedium,
		Category:   "intelligence",
	},
	{
		Word:       "articulate",
		Definition: "expressing ideas clearly and effectively",
		Example:    "His articulate words inspired the entire crowd.",
		Difficulty: model.DifficultyMedium,
		Category:   "speech",
	},
	{
		Word:       "steadfast",
		Definition: "firmly loyal and unwavering",
		Example:    "The steadfast community rebuilt after the natural disaster.",
		Difficulty: model.DifficultyMedium,
		Category:   "strength",
	},

	// Hard
	{
		Word:       "surreptitious",
		Definition: "done secretly, trying not to be noticed",
		Example:    "He made a surreptitious glance at his watch during the meeting.",
		Difficulty: model.DifficultyHard,
		Category:   "secrecy",
	},
	{
		Word:       "omnipresent",
		Definition: "present everywhere at the same time",
		Example:    "The omnipresent nature of social media affects everyone's daily life.",
		Difficulty: model.DifficultyHard,
		Category:   "presence",
	},
	{
		Word:       "sagacious",
		Definition: "having a keen understanding and insight",
		Example:    "The sagacious analyst predicted the market crash months in advance.",
		Difficulty: model.DifficultyHard,
		Category:   "intelligence",
	},
	{
		Word:       "euphonious",
		Definition: "sweet and smooth sounding, like flowing honey",
		Example:    "The euphonious tones of the violin filled the concert hall.",
		Difficulty: model.DifficultyHard,
		Category:   "sound",
	},
	{
		Word:       "paragon",
		Definition: "representing the most perfect example of a quality",
		Example:    "This painting is a paragon of the Romantic era.",
		Difficulty: model.DifficultyHard,
		Category:   "perfection",
	},
	{
		Word:       "evanescent",
		Definition: "lasting for a very brief period of time",
		Example:    "The evanescent beauty of the sunset lasted only a few minutes.",
		Difficulty: model.DifficultyHard,
		Category:   "time",
	},
	{
		Word:       "fortuitous",
		Definition: "occurring or discovered by chance in a happy way",
		Example:    "Their fortuitous meeting at the airport led to a lifelong friendship.",
		Difficulty: model.DifficultyHard,
		Category:   "luck",
	},
	{
		Word:       "grandiloquent",
		Definition: "fluent and persuasive in speech or writing",
		Example:    "The grandiloquent speaker captivated the audience with her powerful words.",
		Difficulty: model.DifficultyHard,
		Category:   "speech",
	},
	{
		Word:       "indomitable",
		Definition: "able to withstand or recover quickly from difficult conditions",
		Example:    "The indomitable ecosystem adapted to the changing climate.",
		Difficulty: model.DifficultyHard,
		Category:   "strength",
	},
	{
		Word:       "veritable",
		Definition: "genuine and original, not a copy or imitation",
		Example:    "The veritable manuscript revealed new insights about the author's life.",
		Difficulty: model.DifficultyHard,
		Category:   "truth",
	},
}

var catalogCategories = []string{
	"intelligence", "speech", "strength", "time", "sound", "perfection",
	"luck", "truth", "creativity", "practical", "work", "communication",
	"ability", "depth", "persistence", "bad", "presence", "secrecy",
}
