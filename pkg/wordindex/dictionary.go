package wordindex

import _ "embed"

//go:embed dictionary_words.txt
var dictionaryData string
