/*
Package chainhash provides a fixed-size hash table of string keys that resolves
collisions by separate chaining and reports how many comparisons each search takes.

The table is meant for studying search cost over a word list: its bucket count
is chosen once and never changes, so chains grow as the load factor rises and
probe counts grow with them.

Basic usage:

	import "github.com/theflywheel/chainhash"

	t, err := chainhash.New(1024)
	if err != nil {
		log.Fatal(err)
	}

	t.InsertAll("apple", "banana", "cherry")

	probes := t.Search("banana")
	if probes == chainhash.NotFound {
		fmt.Println("missing")
	} else {
		fmt.Println("found after", probes, "probes")
	}

Features:

  - Fixed bucket count, no resizing or rehashing
  - Append-only chains that keep insertion order and duplicate keys
  - Search returns the 1-based probe count of the first match, or NotFound
  - Pluggable hash functions: JavaHash (default), FNV1a and XXHash
  - SyncTable wraps a Table with a read/write mutex for concurrent callers

Implementation Details:

The default JavaHash is the polynomial rolling hash h = 31*h + c over the
UTF-16 code units of the key, computed with 32-bit wraparound. The sign bit is
masked off before the value is reduced modulo the table size, so keys whose
hash overflows to a negative number still land in [0, size).

Insert and Search on a Table that was not created with New panic; a table has
no failure modes once constructed.

The harness subpackage runs randomized single and batch searches and
aggregates their timings, and the wordlist subpackage reads line-delimited
keys from disk.
*/
package chainhash
