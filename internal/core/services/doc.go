// Package services implements the driving port interfaces: ingestion
// of documents into the chunk collection and question answering over
// it. Services orchestrate calls to the driven ports (chunk store,
// embedding and generation adapters) and hold no I/O of their own.
package services
