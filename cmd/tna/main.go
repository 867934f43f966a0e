// tna counts tokens in text against a QDPI vocabulary and converts the count
// into cost units.
//
// Usage:
//
//	# Show the loaded vocabulary
//	tna vocab
//
//	# Tokenize text
//	tna tokenize "<X_READ> Hello <Y_INDEX>"
//
//	# Estimate cost (tokens / tokens_per_unit)
//	tna estimate "Some sample text"
//
//	# Re-estimate a file whenever it or the config changes
//	tna watch notes.txt
//
//	# Drive the correction indicator from status lines on stdin
//	tna signal --follow
package main

import "os"

func main() {
	os.Exit(Execute())
}
