package main

import (
	"fmt"

	"github.com/hack-pad/brief"
	"github.com/hack-pad/brief/dom"
	"github.com/spf13/cobra"
)

func queryCmd() *cobra.Command {
	var (
		context  string
		attr     string
		children bool
		html     bool
	)

	cmd := &cobra.Command{
		Use:   "query FILE SELECTOR",
		Short: "Print the elements a selector collects",
		Long: `Print every element SELECTOR matches in FILE, in document order.

SELECTOR is CSS, or XPath when prefixed with "xpath:". FILE may be "-" for stdin.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			var scope any
			if context != "" {
				scope = context
			}
			c, err := brief.New(doc).Query(args[1], scope)
			if err != nil {
				return err
			}
			if children {
				c.Children()
			}

			out := cmd.OutOrStdout()
			return c.ForEach(func(elem *dom.Element, index int, _ *brief.Collection) {
				switch {
				case html:
					fmt.Fprintln(out, elem.OuterHTML())
				case attr != "":
					value, _ := elem.GetAttribute(attr)
					fmt.Fprintf(out, "%d\t%s\t%s\n", index, elem, value)
				default:
					fmt.Fprintf(out, "%d\t%s\n", index, elem)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&context, "context", "c", "", "Selector of the element to search within")
	cmd.Flags().StringVarP(&attr, "attr", "a", "", "Print this attribute of each element")
	cmd.Flags().BoolVar(&children, "children", false, "Print the children of the matched elements instead")
	cmd.Flags().BoolVar(&html, "html", false, "Print the outer HTML of each element")

	return cmd
}
