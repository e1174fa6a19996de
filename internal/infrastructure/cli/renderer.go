package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/foxbrief/internal/domain"
)

// RenderSummary prints the run outcome in a friendly, ASCII-only format.
// Dry runs emit the markdown report itself to stdout.
func RenderSummary(summary domain.RunSummary) {
	if summary.DryRun {
		fmt.Print(summary.Markdown)
		return
	}

	fmt.Println("foxbrief run complete")
	fmt.Printf("Indicators: %s\n", humanize.Comma(int64(summary.IndicatorCount)))
	fmt.Printf("Workspace: %q (slug: %s)\n", summary.WorkspaceName, summary.WorkspaceSlug)
	fmt.Printf("Thread: %q (slug: %s)\n", summary.ThreadName, summary.ThreadSlug)

	fmt.Println()
	fmt.Println("Conversation:")
	for i, turn := range summary.Turns {
		q := turn.Question
		if len(q) > 60 {
			q = q[:60] + "..."
		}
		if turn.Err != nil {
			fmt.Printf(" [%d/%d] Q: %s -> failed: %v\n", i+1, len(summary.Turns), q, turn.Err)
			continue
		}
		fmt.Printf(" [%d/%d] Q: %s -> %s chars\n", i+1, len(summary.Turns), q, humanize.Comma(int64(turn.ReplyChars)))
	}

	fmt.Printf("\n%d/%d turns answered. Review the thread in AnythingLLM.\n", summary.TurnsOK(), len(summary.Turns))
}
