package commands

import (
	"os"
	"runtime"
)

var emojiSupport = detectEmojiSupport(runtime.GOOS, os.Getenv)

// EmojiEnabled can be turned off with --no-color
var EmojiEnabled = true

// detectEmojiSupport guesses if the terminal can render emojis. Everything but
// the legacy windows console usually can
func detectEmojiSupport(goos string, getenv func(string) string) bool {
	if goos != "windows" {
		return true
	}
	// windows terminal sets WT_SESSION, raw cmd or powershell windows do not
	return getenv("WT_SESSION") != ""
}

// Emoji returns the given string (usually a emoji) if the current terminal
// (probably) supports it
func Emoji(e string) string {
	if emojiSupport && EmojiEnabled {
		return e
	}
	return ""
}
