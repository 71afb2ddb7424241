package tagging

// Multi-language stopword corpus. Static, loaded once at package init,
// matched case-insensitively against already-lowercased tokens. Derived
// tags never contain these words; explicit removal via Untag does not
// consult this list.

var stopwordLists = [][]string{
	// English
	{
		"a", "about", "above", "after", "again", "against", "all", "am",
		"an", "and", "any", "are", "aren", "as", "at", "be", "because",
		"been", "before", "being", "below", "between", "both", "but", "by",
		"can", "cannot", "could", "did", "do", "does", "doing", "down",
		"during", "each", "few", "for", "from", "further", "had", "has",
		"have", "having", "he", "her", "here", "hers", "herself", "him",
		"himself", "his", "how", "i", "if", "in", "into", "is", "it", "its",
		"itself", "just", "me", "more", "most", "my", "myself", "no", "nor",
		"not", "now", "of", "off", "on", "once", "only", "or", "other",
		"ought", "our", "ours", "ourselves", "out", "over", "own", "same",
		"she", "should", "so", "some", "such", "than", "that", "the",
		"their", "theirs", "them", "themselves", "then", "there", "these",
		"they", "this", "those", "through", "to", "too", "under", "until",
		"up", "very", "was", "we", "were", "what", "when", "where", "which",
		"while", "who", "whom", "why", "will", "with", "would", "you",
		"your", "yours", "yourself", "yourselves",
	},
	// Spanish
	{
		"al", "algo", "ante", "antes", "como", "con", "contra", "cual",
		"cuando", "de", "del", "desde", "donde", "durante", "el", "ella",
		"ellas", "ellos", "en", "entre", "era", "eres", "es", "esa", "ese",
		"eso", "esta", "este", "esto", "fue", "ha", "hasta", "hay", "la",
		"las", "le", "les", "lo", "los", "mas", "mi", "mucho", "muy",
		"nada", "ni", "nos", "nosotros", "nuestra", "nuestro", "o", "os",
		"otra", "otro", "para", "pero", "poco", "por", "porque", "que",
		"quien", "se", "ser", "si", "sin", "sobre", "son", "soy", "su",
		"sus", "tambien", "te", "tiene", "todo", "tu", "un", "una", "uno",
		"unos", "usted", "y", "ya", "yo",
	},
	// French
	{
		"au", "aux", "avec", "ce", "ces", "cette", "dans", "des", "donc",
		"du", "elle", "elles", "et", "eux", "il", "ils", "je", "leur",
		"leurs", "lui", "ma", "mais", "mes", "moi", "mon", "ne", "nos",
		"notre", "nous", "ou", "par", "pas", "pour", "qu", "que", "qui",
		"sa", "sans", "ses", "son", "sont", "sur", "ta", "tes", "toi",
		"ton", "tous", "tout", "toute", "toutes", "une", "vos", "votre",
		"vous",
	},
	// German
	{
		"aber", "als", "auch", "auf", "aus", "bei", "bin", "bis", "bist",
		"da", "damit", "dann", "das", "dass", "dein", "deine", "dem",
		"den", "der", "dich", "die", "dir", "doch", "dort", "durch",
		"ein", "eine", "einem", "einen", "einer", "eines", "er", "es",
		"euer", "eure", "hatte", "hier", "hinter", "ich", "ihr", "ihre",
		"im", "ist", "ja", "jede", "jedem", "jeden", "jeder", "jedes",
		"kann", "kein", "keine", "mein", "meine", "mit", "nach", "nein",
		"nicht", "noch", "nun", "nur", "ob", "oder", "sein", "seine",
		"sich", "sie", "sind", "soll", "und", "uns", "unser", "unter",
		"vom", "von", "vor", "wann", "war", "warum", "weiter", "wenn",
		"wer", "werde", "werden", "wie", "wieder", "wir", "wird", "wirst",
		"wo", "zu", "zum", "zur",
	},
	// Portuguese
	{
		"ao", "aos", "aquela", "aquele", "aquilo", "ate", "com", "da",
		"dela", "dele", "deles", "depois", "do", "dos", "ela", "elas",
		"ele", "eles", "em", "entao", "essa", "esse", "eu", "foi", "isso",
		"isto", "ja", "mesmo", "meu", "minha", "na", "nao", "nas", "nem",
		"no", "nos", "nossa", "nosso", "num", "numa", "os", "ou", "pela",
		"pelo", "qual", "quando", "sao", "sem", "seu", "sua", "tem", "um",
		"uma", "voce", "voces",
	},
}

var stopwords = buildStopwords()

func buildStopwords() map[string]bool {
	set := make(map[string]bool, 512)
	for _, list := range stopwordLists {
		for _, w := range list {
			set[w] = true
		}
	}
	return set
}

// IsStopword reports whether a lowercased token is in the corpus.
func IsStopword(tok string) bool {
	return stopwords[tok]
}
