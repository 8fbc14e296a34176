package textgen

// Local fallback corpus, keyed by source id. Used whenever the remote quote
// services are unreachable or the source has no remote backing.

var quotesCorpus = []string{
	"The only way to do great work is to love what you do.",
	"Life is what happens when you're busy making other plans.",
	"The future belongs to those who believe in the beauty of their dreams.",
	"Success is not final, failure is not fatal: it is the courage to continue that counts.",
	"The only limit to our realization of tomorrow will be our doubts of today.",
	"In the middle of difficulty lies opportunity.",
	"The best way to predict the future is to invent it.",
	"Don't watch the clock; do what it does. Keep going.",
	"The journey of a thousand miles begins with one step.",
	"What you get by achieving your goals is not as important as what you become by achieving your goals.",
	"The mind is everything. What you think you become.",
	"Quality is not an act, it is a habit.",
	"The only person you are destined to become is the person you decide to be.",
	"Your time is limited, don't waste it living someone else's life.",
	"The greatest glory in living lies not in never falling, but in rising every time we fall.",
}

var programmingCorpus = []string{
	"function calculateFibonacci(n) { if (n <= 1) return n; return calculateFibonacci(n - 1) + calculateFibonacci(n - 2); }",
	"const express = require('express'); const app = express(); app.get('/', (req, res) => { res.send('Hello World!'); });",
	"class User { constructor(name, email) { this.name = name; this.email = email; } getInfo() { return this.name + ' (' + this.email + ')'; } }",
	"async function fetchData(url) { try { const response = await fetch(url); const data = await response.json(); return data; } catch (error) { console.error('Error:', error); } }",
	"const numbers = [1, 2, 3, 4, 5]; const doubled = numbers.map(n => n * 2); const sum = numbers.reduce((acc, n) => acc + n, 0);",
	"interface Config { apiKey: string; baseUrl: string; timeout: number; } const config: Config = { apiKey: 'abc123', baseUrl: 'https://api.example.com', timeout: 5000 };",
	"func main() { ch := make(chan int); go func() { ch <- compute() }(); result := <-ch; fmt.Println(result) }",
	"SELECT users.name, orders.total FROM users JOIN orders ON users.id = orders.user_id WHERE orders.status = 'completed';",
	"def fibonacci(n): return n if n <= 1 else fibonacci(n - 1) + fibonacci(n - 2)",
	"type Server struct { addr string; handler http.Handler } func (s *Server) ListenAndServe() error { return http.ListenAndServe(s.addr, s.handler) }",
}

var loremCorpus = []string{
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
	"Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat.",
	"Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur.",
	"Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum.",
	"Sed ut perspiciatis unde omnis iste natus error sit voluptatem accusantium doloremque laudantium.",
	"Nemo enim ipsam voluptatem quia voluptas sit aspernatur aut odit aut fugit, sed quia consequuntur magni dolores eos qui ratione voluptatem sequi nesciunt.",
}

var commonWords = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "I", "it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
	"this", "but", "his", "by", "from", "they", "we", "say", "her", "she", "or", "an", "will", "my", "one", "all", "would", "there", "their", "what",
	"so", "up", "out", "if", "about", "who", "get", "which", "go", "me", "when", "make", "can", "like", "time", "no", "just", "him", "know", "take",
	"people", "into", "year", "your", "good", "some", "could", "them", "see", "other", "than", "then", "now", "look", "only", "come", "its", "over", "think", "also",
	"back", "after", "use", "two", "how", "our", "work", "first", "well", "way", "even", "new", "want", "because", "any", "these", "give", "day", "most", "us",
}

var sentencesCorpus = []string{
	"The quick brown fox jumps over the lazy dog.",
	"Pack my box with five dozen liquor jugs.",
	"How vexingly quick daft zebras jump!",
	"The five boxing wizards jump quickly.",
	"Sphinx of black quartz, judge my vow.",
	"Bright vixens jump; dozy fowl quack.",
	"Quick wafting zephyrs vex bold Jim.",
	"The jay, pig, fox, zebra and my wolves quack!",
	"The quick brown fox jumps over the lazy dog while the cat sleeps peacefully.",
	"Programming is the art of telling another human being what one wants the computer to do.",
	"The best way to predict the future is to implement it.",
	"Code is read much more often than it is written.",
	"Any fool can write code that a computer can understand. Good programmers write code that humans can understand.",
}

func localCorpus(source string) []string {
	switch source {
	case SourceProgramming:
		return programmingCorpus
	case SourceLorem:
		return loremCorpus
	case SourceSentences:
		return sentencesCorpus
	default:
		// Unknown source ids fall back to quotes so a session can always
		// start.
		return quotesCorpus
	}
}
