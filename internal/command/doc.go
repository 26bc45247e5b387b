// Package command carries playback requests from the UI to the audio worker.
//
// Producers call Queue.Enqueue, which never blocks. A single Worker owns the
// playback sink and drains the queue one command per poll, so a burst of
// requests is applied in order over several poll intervals. Failed commands
// are logged and dropped without changing what is playing.
package command
