// SPDX-License-Identifier: GPL-2.0-or-later

// pmsim runs scripted player movement against a scene and checks replay
// journals.
package main

import (
	"fmt"
	"os"
	"sort"

	"etmove/cm"
	"etmove/config"
	"etmove/conlog"
	"etmove/cvar"
	"etmove/cvars"
	"etmove/journal"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
)

var CLI struct {
	Debug bool              `help:"Whether to enable developer logging."`
	JSON  bool              `help:"Log JSON lines instead of console text." name:"json"`
	Set   map[string]string `help:"Set variables before running (name=value)." short:"s"`

	Run struct {
		Scene   string   `help:"Scene file with the world brushes." required:"" type:"existingfile"`
		Script  string   `help:"Command script to play." required:"" type:"existingfile"`
		Config  []string `help:"Variable files, applied in order." type:"existingfile"`
		Journal string   `help:"Record a replay journal to this file." type:"path"`
		Latency int      `help:"Commands the client runs ahead of the server." default:"0"`
	} `cmd:"" help:"Simulate a server and a predicting client."`

	Verify struct {
		Scene   string `help:"Scene file the journal was recorded in." required:"" type:"existingfile"`
		Journal string `help:"Journal to replay." required:"" type:"existingfile"`
	} `cmd:"" help:"Replay a journal and report the first divergence."`

	Vars struct {
		Config []string `help:"Variable files, applied in order." type:"existingfile"`
	} `cmd:"" help:"List the variables after applying files and --set."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pmsim"),
		kong.Description("a player movement simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	conlog.SetOutput(os.Stdout, !CLI.JSON)
	if CLI.Debug {
		cvars.Developer.SetByString("1")
	}

	var err error
	switch ctx.Command() {
	case "run":
		err = runCommand()
	case "verify":
		err = verifyCommand()
	case "vars":
		err = applyVariables(CLI.Vars.Config)
		if err == nil {
			cvar.List()
		}
	}
	if err != nil {
		writeError(err)
	}
}

func applyVariables(files []string) error {
	for _, f := range files {
		if err := config.Load(f); err != nil {
			return err
		}
	}
	return setVariables(CLI.Set)
}

// setVariables applies name=value pairs sorted by name so callbacks fire in
// a stable order.
func setVariables(set map[string]string) error {
	names := make([]string, 0, len(set))
	for name := range set {
		if _, ok := cvar.Get(name); !ok {
			return errors.Errorf("unknown variable %s", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cvar.Set(name, set[name])
	}
	return nil
}

func runCommand() error {
	opts := &CLI.Run
	if err := applyVariables(opts.Config); err != nil {
		return err
	}
	scene, err := cm.LoadScene(opts.Scene)
	if err != nil {
		return err
	}
	sc, err := loadScript(opts.Script)
	if err != nil {
		return err
	}
	if opts.Latency < 0 {
		return errors.Errorf("negative latency %d", opts.Latency)
	}

	sim := &simulation{scene: scene, script: sc, latency: opts.Latency}
	ps, ext := spawnState(scene.Spawn)
	if opts.Journal != "" {
		sim.journal, err = journal.New(ps, ext, cvars.MoveParams(), sc.Loadout)
		if err != nil {
			return err
		}
	}

	misses := 0
	for _, f := range sim.run(ps, ext) {
		report(&f)
		if f.Outcome.Missed {
			misses++
		}
	}
	conlog.Info().
		Int("commands", len(sc.Cmds)).
		Int("misses", misses).
		Msg("done")

	if sim.journal != nil {
		if err := sim.journal.Save(opts.Journal); err != nil {
			return err
		}
		conlog.Info().
			Str("session", sim.journal.Session.String()).
			Str("path", opts.Journal).
			Msg("journal written")
	}
	return nil
}

func report(f *frame) {
	ev := conlog.Info().
		Int32("time", f.Cmd.ServerTime).
		Floats32("origin", f.State.Origin[:]).
		Floats32("velocity", f.State.Velocity[:]).
		Int("ground", f.State.GroundEntityNum).
		Stringer("type", f.State.Type)
	if len(f.Events) > 0 {
		names := make([]string, len(f.Events))
		for i, e := range f.Events {
			names[i] = e.String()
		}
		ev = ev.Strs("events", names)
	}
	if len(f.Touched) > 0 {
		ev = ev.Ints("touched", f.Touched)
	}
	if f.Outcome.Missed {
		ev = ev.Floats32("miss", f.Outcome.Miss[:])
	}
	if f.Outcome.Lost {
		ev = ev.Bool("lost", true)
	}
	ev.Msg("")
}

func verifyCommand() error {
	opts := &CLI.Verify
	if err := applyVariables(nil); err != nil {
		return err
	}
	scene, err := cm.LoadScene(opts.Scene)
	if err != nil {
		return err
	}
	j, err := journal.Load(opts.Journal)
	if err != nil {
		return err
	}
	if err := journal.Verify(j, scene.World); err != nil {
		var derr *journal.DivergenceError
		if errors.As(err, &derr) {
			conlog.Error().
				Str("session", j.Session.String()).
				Int("record", derr.Index).
				Int32("time", derr.ServerTime).
				Msg("diverged")
		}
		return err
	}
	conlog.Info().
		Str("session", j.Session.String()).
		Int("records", len(j.Records)).
		Msg("verified")
	return nil
}
