package command

import (
	"context"
	"fmt"
)

// Copy writes text to the system clipboard and confirms with a toast.
type Copy struct {
	env  Env
	text string
	what string
}

// NewCopy returns a command that copies text to the clipboard. The
// what label ("payload", "secret name") appears in the status tracker
// and in the confirmation toast.
func NewCopy(env Env, text, what string) *Copy {
	return &Copy{env: env, text: text, what: what}
}

// Name implements Command.
func (c *Copy) Name() string { return "Copying " + c.what }

// Execute implements Command.
func (c *Copy) Execute(context.Context) error {
	if err := c.env.SetClipboard(c.text); err != nil {
		return fmt.Errorf("copy %s to clipboard: %w", c.what, err)
	}
	c.env.ShowToast("Copied "+c.what, ToastSuccess)
	return nil
}
