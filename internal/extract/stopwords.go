package extract

// englishStopWords is the stop word list handed to the TF-IDF vectoriser.
var englishStopWords = []string{
	"a", "an", "the", "and", "or", "but", "of", "to", "for", "with", "by",
	"in", "on", "at", "from", "as", "is", "are", "was", "were", "be",
	"been", "being", "it", "its", "this", "that", "these", "those", "we",
	"our", "you", "your", "i", "me", "my", "us", "them", "they", "their",
	"he", "she", "his", "her", "him", "do", "does", "did", "done", "have",
	"has", "had", "what", "how", "why", "when", "where", "which", "who",
	"whom", "can", "could", "should", "would", "may", "might", "will",
	"shall", "must", "not", "no", "nor", "so", "than", "then", "there",
	"here", "all", "any", "both", "each", "few", "more", "most", "other",
	"some", "such", "only", "own", "same", "too", "very", "just", "also",
	"into", "over", "under", "again", "further", "once", "about", "up",
	"down", "out", "off", "above", "below", "between", "through", "during",
	"before", "after", "while", "if", "because", "until", "against",
}
