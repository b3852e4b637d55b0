package main

import (
	"fmt"

	"github.com/akash-new/reviewscout"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return reviewscout.Errorf(reviewscout.EINVALID, "use --force to confirm deletion")
	}

	src, err := deps.Config.Source(reviewscout.Platform(c.Platform))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: platform %q not found. Use 'reviewscout platforms' to see configured platforms.\n", c.Platform)
		return err
	}

	if err := deps.Reviews.DeleteReviewsByPlatform(deps.Ctx, src.Platform); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", reviewscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted reviews for %q\n", src.Platform)
	return nil
}
