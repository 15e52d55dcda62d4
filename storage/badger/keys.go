package badger

import (
	"encoding/binary"

	"github.com/poiesic/termgraph/core"
)

// Key prefixes for different node and edge types
const (
	corpusPrefix         = "corpus:"     // corpus:<name> -> Corpus
	corpusDocumentPrefix = "corpusdoc:"  // corpusdoc:<corpusID><docID> -> membership
	corpusTermPrefix     = "corpusterm:" // corpusterm:<corpusID><termID> -> membership
	documentPrefix       = "doc:"        // doc:<docID> -> Document
	documentTermPrefix   = "doctf:"      // doctf:<docID><termID> -> edge index
	termPrefix           = "term:"       // term:<termID> -> Term
	termFrequencyPrefix  = "tf:"         // tf:<termID><docID> -> TermFrequency
	checkpointPrefix     = "chkpt:"      // chkpt:<corpus>\x00<stage> -> Checkpoint
)

var emptyValue = []byte{}

// makeIDKey builds prefix followed by each ID in BigEndian order, so
// lexicographic key order matches numeric order and prefix scans on the
// leading IDs work.
func makeIDKey(prefix string, ids ...core.ID) []byte {
	buf := make([]byte, len(prefix)+8*len(ids))
	offset := copy(buf, prefix)
	for _, id := range ids {
		binary.BigEndian.PutUint64(buf[offset:], uint64(id))
		offset += 8
	}
	return buf
}

// trailingID decodes the ID stored in the last 8 bytes of a composite key.
func trailingID(key []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
}

func makeCorpusKey(name string) []byte {
	return []byte(corpusPrefix + name)
}

func makeCorpusDocumentKey(corpusID, docID core.ID) []byte {
	return makeIDKey(corpusDocumentPrefix, corpusID, docID)
}

func makeCorpusTermKey(corpusID, termID core.ID) []byte {
	return makeIDKey(corpusTermPrefix, corpusID, termID)
}

func makeDocumentKey(id core.ID) []byte {
	return makeIDKey(documentPrefix, id)
}

func makeDocumentTermKey(docID, termID core.ID) []byte {
	return makeIDKey(documentTermPrefix, docID, termID)
}

func makeTermKey(id core.ID) []byte {
	return makeIDKey(termPrefix, id)
}

func makeTermFrequencyKey(termID, docID core.ID) []byte {
	return makeIDKey(termFrequencyPrefix, termID, docID)
}

// makeCheckpointKey generates a key for a stage checkpoint of a corpus.
func makeCheckpointKey(corpus, stage string) []byte {
	return []byte(checkpointPrefix + corpus + "\x00" + stage)
}

// makeCheckpointCorpusPrefix matches every checkpoint of a corpus.
func makeCheckpointCorpusPrefix(corpus string) []byte {
	return []byte(checkpointPrefix + corpus + "\x00")
}
