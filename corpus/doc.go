// Package corpus enumerates the documents of a local corpus directory and
// turns their text into term counts.
package corpus
