package main

import (
	"fmt"

	"github.com/hack-pad/brief"
	"github.com/hack-pad/brief/dom"
	"github.com/hack-pad/brief/listener"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func traceCmd() *cobra.Command {
	var (
		owner     string
		delegate  string
		target    string
		eventType string
		stopAt    string
	)

	cmd := &cobra.Command{
		Use:   "trace FILE",
		Short: "Dispatch an event and print the listeners it reaches",
		Long: `Bind a listener to every element matching --on, dispatch --type at the
first element matching --target and print each invocation in order.

With --delegate the listeners are delegated to that selector and report the
matching descendant instead of the owner.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			b := brief.New(doc)
			targetElem, err := doc.QuerySelector(target)
			if err != nil {
				return err
			}
			if targetElem == nil {
				return errors.Errorf("target %q matched nothing", target)
			}

			out := cmd.OutOrStdout()
			invocations := 0
			h := listener.NewHandler(func(current *dom.Element, event *listener.Event) {
				invocations++
				fmt.Fprintf(out, "%d\t%s\t%s\n", invocations, event.Type, current)
				if stopAt != "" {
					if match, _ := current.Matches(stopAt); match {
						event.StopPropagation()
					}
				}
			})
			var opts []listener.Option
			if delegate != "" {
				opts = append(opts, listener.Delegate(delegate))
			}
			if err := b.OnAll(owner, eventType, h, opts...); err != nil {
				return err
			}
			defer b.Registry().Close()

			doc.Dispatch(targetElem, eventType)
			if invocations == 0 {
				fmt.Fprintln(out, "no listeners reached")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "on", "", "Selector of the elements owning the listeners")
	cmd.Flags().StringVar(&delegate, "delegate", "", "Delegate selector")
	cmd.Flags().StringVar(&target, "target", "", "Selector of the event target")
	cmd.Flags().StringVarP(&eventType, "type", "t", "click", "Event type")
	cmd.Flags().StringVar(&stopAt, "stop-at", "", "Stop propagation at the first node matching this selector")
	_ = cmd.MarkFlagRequired("on")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}
