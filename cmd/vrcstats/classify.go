package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vrclog/vrcstats-go/pkg/vrcstats/instance"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [instance-id...]",
	Short: "Print the access category of instance IDs",
	Long: `Print the access category of each instance ID, one per line as
"CATEGORY<TAB>ID". With no arguments, or with "-", IDs are read from
standard input, one per line.

Categories: ` + categoryList() + `

Examples:
  vrcstats classify 'wrld_xxx:12345~private(usr_xxx)~canRequestInvite'

  vrcstats events --all --types instance_join | jq -r .instance_id | vrcstats classify`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		return classifyLines(cmd.InOrStdin(), out)
	}
	for _, id := range args {
		if err := writeCategory(out, id); err != nil {
			return err
		}
	}
	return nil
}

// classifyLines classifies each non-empty line of r.
func classifyLines(r io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		id := strings.TrimSpace(sc.Text())
		if id == "" {
			continue
		}
		if err := writeCategory(out, id); err != nil {
			return err
		}
	}
	return sc.Err()
}

func writeCategory(out io.Writer, id string) error {
	_, err := fmt.Fprintf(out, "%s\t%s\n", instance.Classify(id), id)
	return err
}

func categoryList() string {
	names := make([]string, 0, len(instance.Categories()))
	for _, c := range instance.Categories() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}
