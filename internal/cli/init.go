package cli

import "fmt"

type InitCmd struct {
	NoWelcome bool `help:"Do not add the welcome entry."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Initialized riji journal at: %s\n", ctx.Store.GetConfigPath())

	if c.NoWelcome {
		return nil
	}
	if err := ctx.LoadForWrite(); err != nil {
		return err
	}
	added, err := ctx.Journal.SeedWelcome()
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintln(ctx.Out, "Added a welcome entry. Run 'riji' to open your journal.")
	}
	return nil
}
