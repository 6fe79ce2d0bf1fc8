// Package recordio implements the binary framing used for heap snapshots.
// A snapshot is a header followed by a fixed number of length-prefixed
// records:
//
//	magic "LHP" | version uint8 | count int64 | count x (length uint64 | bytes)
//
// All integers are little endian. The magic bytes and version are validated
// on read, and a stream that ends before count records have been read is
// reported as ErrTruncated.
//
// Basic usage:
//
//	var buf bytes.Buffer
//	if _, err := recordio.WriteHeader(&buf, 2); err != nil {
//	    log.Fatal(err)
//	}
//	recordio.WriteRecord(&buf, []byte("first"))
//	recordio.WriteRecord(&buf, []byte("second"))
//
//	for data, err := range recordio.Seq(&buf) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("Read record: %s\n", data)
//	}
package recordio
