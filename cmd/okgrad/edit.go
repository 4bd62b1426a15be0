package main

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/benoitkugler/okgrad/preset"
	"github.com/benoitkugler/okgrad/urlstate"
	"github.com/spf13/cobra"
)

type editFlags struct {
	set         []string
	addStops    int
	updateStops []string
	removeStops []string
	save        string
}

// actions lists the edits in the order they are applied: fields, new
// stops, stop updates and then removals.
func (e editFlags) actions() ([]gradstate.Action, error) {
	var out []gradstate.Action
	for _, kv := range e.set {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: expected key=value", kv)
		}
		a, err := gradstate.SetField(strings.TrimSpace(key), value)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	for i := 0; i < e.addStops; i++ {
		out = append(out, gradstate.AddColorStop{})
	}
	for _, arg := range e.updateStops {
		id, kv, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("--update-stop %q: expected id:field=value[,field=value]", arg)
		}
		var patch gradstate.StopPatch
		for _, field := range strings.Split(kv, ",") {
			key, value, ok := strings.Cut(field, "=")
			if !ok {
				return nil, fmt.Errorf("--update-stop %q: expected field=value", field)
			}
			var err error
			if patch, err = gradstate.ParseStopPatch(patch, strings.TrimSpace(key), value); err != nil {
				return nil, err
			}
		}
		out = append(out, gradstate.UpdateColorStop{ID: id, Patch: patch})
	}
	for _, id := range e.removeStops {
		out = append(out, gradstate.RemoveColorStop{ID: id})
	}
	return out, nil
}

func newEditCmd(g *globalFlags) *cobra.Command {
	var e editFlags
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Apply edits to the gradient and print the resulting query string",
		Example: `  okgrad edit --set type=linear --set angle=45
  okgrad edit -p preset.yaml --add-stop 1 --update-stop 3:color=#00FF00,position=50 --save preset.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.state()
			if err != nil {
				return err
			}
			actions, err := e.actions()
			if err != nil {
				return err
			}
			store := gradstate.NewStore(s)
			for _, a := range actions {
				if _, err = store.Dispatch(a); err != nil {
					return fmt.Errorf("%s: %w", gradstate.Describe(a), err)
				}
			}
			s = store.State()
			if e.save != "" {
				if err = preset.Save(e.save, s); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), urlstate.Encode(s))
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringArrayVar(&e.set, "set", nil, "set a field, as key=value (repeatable)")
	flags.IntVar(&e.addStops, "add-stop", 0, "number of white stops to append")
	flags.StringArrayVar(&e.updateStops, "update-stop", nil, "update a stop, as id:field=value[,field=value] (repeatable)")
	flags.StringArrayVar(&e.removeStops, "remove-stop", nil, "remove the stop with this id (repeatable)")
	flags.StringVar(&e.save, "save", "", "save the result to this preset file")
	return cmd
}
