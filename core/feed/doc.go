// Package feed decodes delivered blocks for replay and archives them.
//
// Blocks are read as JSON (an array, or one object per line) or as a stream of
// YAML documents, chosen by file extension. FileSource reads a file or a
// directory; ObjectSource reads every feed object under a bucket prefix. Both
// yield blocks in lexical order of their source names.
//
// Archiver writes each delivered block as <prefix><height>-<hash>.json so an
// archive prefix replays in chain order.
package feed
