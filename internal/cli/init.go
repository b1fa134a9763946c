package cli

import (
	"context"
	"fmt"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	store, err := NewStore(ctx.Config)
	if err != nil {
		return err
	}
	bg := context.Background()
	if err := store.Init(bg); err != nil {
		return err
	}
	defer store.Close(bg)

	fmt.Printf("Initialized planme storage at: %s\n", store.Describe())
	return nil
}
