// Package document provides the immutable freight document aggregate.
// A document's content and its SHA-256 and SHA-512 digests are fixed at
// creation; reads return defensive copies so stored bytes cannot be
// mutated from outside.
package document
