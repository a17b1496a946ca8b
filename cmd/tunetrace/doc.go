// Command tunetrace resolves artist names to channel URLs, verifies them
// against representative songs, and manages the review backlog.
package main
