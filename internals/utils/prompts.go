package utils

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user aborted a prompt
var ErrAborted = errors.New("aborted")

func SelectPrompt(prompt *promptui.Select) (int, error) {
	i, _, err := prompt.Run()
	if err != nil {
		return -1, ErrAborted
	}
	return i, nil
}

func StringPrompt(prompt *promptui.Prompt) (string, error) {
	res, err := prompt.Run()
	if err != nil {
		return "", ErrAborted
	}
	return res, nil
}

func BoolPrompt(prompt *promptui.Prompt) (bool, error) {
	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, ErrAborted
		}
		return false, nil
	}
	return true, nil
}
