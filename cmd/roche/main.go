package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/StuartLittlefair/trm-roche/advanced"
	"github.com/StuartLittlefair/trm-roche/internal/config"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Command line access to the Roche geometry routines. Curves are written to
// stdout as two columns, x and y (or vx and vy), one point per line, ready for
// plotting with anything.
func main() {
	log.SetFlags(0)
	log.SetPrefix("roche: ")
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}

// A flag that overrides a config file value only when it is given.
type tunable struct {
	value float64
	set   bool
}

func tunableFlag(cmd *kingpin.CmdClause, name, help string) *tunable {
	t := &tunable{}
	cmd.Flag(name, help).Action(func(*kingpin.ParseContext) error {
		t.set = true
		return nil
	}).Float64Var(&t.value)
	return t
}

func (t *tunable) apply(dst *float64) {
	if t.set {
		*dst = t.value
	}
}

func massRatioFlag(cmd *kingpin.CmdClause) *float64 {
	return cmd.Flag("q", "Mass ratio M2/M1.").Short('q').Envar("ROCHE_Q").Default("0.5").Float64()
}

func starFlag(cmd *kingpin.CmdClause, def string) *string {
	return cmd.Flag("star", "Star: 1 for the primary, 2 for the secondary.").Default(def).Enum("1", "2")
}

func parseStar(s string) advanced.Star {
	if s == "1" {
		return advanced.Primary
	}
	return advanced.Secondary
}

func pointFlags(cmd *kingpin.CmdClause) (x, y, z *float64) {
	x = cmd.Flag("x", "X coordinate of the point.").Default("0").Float64()
	y = cmd.Flag("y", "Y coordinate of the point.").Default("0").Float64()
	z = cmd.Flag("z", "Z coordinate of the point.").Default("0").Float64()
	return x, y, z
}

func run(args []string, out io.Writer) (err error) {
	defer func() {
		if recoveredErr := advanced.HandleRochePanicRecover(recover()); recoveredErr != nil {
			err = recoveredErr
		}
	}()

	app := kingpin.New("roche", "Roche lobe geometry of close binary stars.")
	app.UsageWriter(out)
	configPath := app.Flag("config", "YAML file overriding the numerical defaults.").Envar("ROCHE_CONFIG").String()
	trace := app.Flag("trace", "Print solver progress to stderr.").Envar("ROCHE_TRACE").Bool()

	configCmd := app.Command("config", "Print the settings in effect as YAML, a starting point for --config.")

	lagrangeCmd := app.Command("lagrange", "Print the five Lagrange points.")
	lagrangeQ := massRatioFlag(lagrangeCmd)

	lobeCmd := app.Command("lobe", "Print a Roche lobe in the orbital plane.")
	lobeQ := massRatioFlag(lobeCmd)
	lobeN := lobeCmd.Flag("n", "Number of points.").Short('n').Default("200").Int()
	lobeStar := starFlag(lobeCmd, "2")

	vlobeCmd := app.Command("vlobe", "Print a Roche lobe in velocity space.")
	vlobeQ := massRatioFlag(vlobeCmd)
	vlobeN := vlobeCmd.Flag("n", "Number of points.").Short('n').Default("200").Int()
	vlobeStar := starFlag(vlobeCmd, "2")

	streamCmd := app.Command("stream", "Print the gas stream from L1.")
	streamQ := massRatioFlag(streamCmd)
	streamN := streamCmd.Flag("n", "Number of points.").Short('n').Default("200").Int()
	streamRad := streamCmd.Flag("rad", "Space points evenly in radius from L1 down to this distance from the primary instead of along the stream. Cannot be combined with --kick or --step.").Default("-1").Float64()
	streamKick := tunableFlag(streamCmd, "kick", "Initial displacement from L1.")
	streamStep := tunableFlag(streamCmd, "step", "Arc length between points.")

	vstreamCmd := app.Command("vstream", "Print the gas stream in velocity space.")
	vstreamQ := massRatioFlag(vstreamCmd)
	vstreamN := vstreamCmd.Flag("n", "Number of points.").Short('n').Default("200").Int()
	vstreamFrame := vstreamCmd.Flag("frame", "1 for the stream's own velocity, 2 for the disc velocity along it.").Default("1").Enum("1", "2")
	vstreamKick := tunableFlag(vstreamCmd, "kick", "Initial displacement from L1.")
	vstreamStep := tunableFlag(vstreamCmd, "step", "Arc length between points.")

	strmnxCmd := app.Command("strmnx", "Print the n-th turning point of the stream's distance from the primary.")
	strmnxQ := massRatioFlag(strmnxCmd)
	strmnxN := strmnxCmd.Flag("n", "Turning point, 1 for the first closest approach.").Short('n').Default("1").Int()
	strmnxAcc := strmnxCmd.Flag("acc", "Integration accuracy.").Default("1e-7").Float64()

	inegCmd := app.Command("ineg", "Print the ingress and egress phases of a point.")
	inegQ := massRatioFlag(inegCmd)
	inegIncl := inegCmd.Flag("incl", "Inclination in degrees.").Short('i').Envar("ROCHE_INCL").Default("85").Float64()
	inegX, inegY, inegZ := pointFlags(inegCmd)
	inegStar := starFlag(inegCmd, "2")
	inegFill := tunableFlag(inegCmd, "fill", "Fraction of its Roche lobe the eclipsing star fills.")

	fblinkCmd := app.Command("fblink", "Report whether a point is eclipsed at a phase.")
	fblinkQ := massRatioFlag(fblinkCmd)
	fblinkIncl := fblinkCmd.Flag("incl", "Inclination in degrees.").Short('i').Envar("ROCHE_INCL").Default("85").Float64()
	fblinkPhase := fblinkCmd.Flag("phase", "Orbital phase.").Short('p').Default("0").Float64()
	fblinkX, fblinkY, fblinkZ := pointFlags(fblinkCmd)
	fblinkStar := starFlag(fblinkCmd, "2")
	fblinkFill := tunableFlag(fblinkCmd, "fill", "Fraction of its Roche lobe the eclipsing star fills.")

	findqCmd := app.Command("findq", "Find the mass ratio giving a white dwarf eclipse of the given width.")
	findqIncl := findqCmd.Flag("incl", "Inclination in degrees.").Short('i').Envar("ROCHE_INCL").Default("85").Float64()
	findqWidth := findqCmd.Flag("width", "Full width of the eclipse in phase.").Short('w').Required().Float64()

	plotCmd := app.Command("plot", "Plot both lobes, the stream and the Lagrange points to a PNG file.")
	plotQ := massRatioFlag(plotCmd)
	plotN := plotCmd.Flag("n", "Points per lobe.").Short('n').Default("200").Int()
	plotStream := plotCmd.Flag("stream", "Points along the stream, 0 for none.").Default("150").Int()
	plotVelocity := plotCmd.Flag("velocity", "Plot in velocity space.").Bool()
	plotOut := plotCmd.Flag("out", "Output file.").Short('o').Default("roche.png").String()

	drawCmd := app.Command("draw", "Quick look at both lobes and the stream, drawn straight into the terminal.")
	drawQ := massRatioFlag(drawCmd)
	drawScale := drawCmd.Flag("scale", "Pixels per unit separation.").Default("300").Float64()
	drawOut := drawCmd.Flag("out", "Write a PNG file instead of drawing in the terminal.").Short('o').String()

	command, err := app.Parse(args)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *trace {
		advanced.SetTrace(os.Stderr)
		defer advanced.SetTrace(nil)
	}

	switch command {
	case configCmd.FullCommand():
		data, err := cfg.Dump()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err

	case lagrangeCmd.FullCommand():
		return printLagrange(out, *lagrangeQ)

	case lobeCmd.FullCommand():
		curve, err := advanced.Lobe(*lobeQ, *lobeN, parseStar(*lobeStar))
		if err != nil {
			return err
		}
		return printCurve(out, curve)

	case vlobeCmd.FullCommand():
		curve, err := advanced.VLobe(*vlobeQ, *vlobeN, parseStar(*vlobeStar))
		if err != nil {
			return err
		}
		return printCurve(out, curve)

	case streamCmd.FullCommand():
		if *streamRad >= 0 {
			// Radius mode samples at fixed radii with its own integration
			// settings.
			if streamKick.set || streamStep.set {
				return errors.Wrap(advanced.ErrInvalidArgument, "stream: --rad cannot be combined with --kick or --step")
			}
			if *configPath != "" {
				log.Printf("stream settings in %s are not used with --rad", *configPath)
			}
			curve, err := advanced.StreamRadius(*streamQ, *streamRad, *streamN)
			if err != nil {
				return err
			}
			return printCurve(out, curve)
		}
		streamKick.apply(&cfg.Stream.Kick)
		streamStep.apply(&cfg.Stream.Step)
		traj, err := advanced.StreamWithConfig(*streamQ, *streamN, cfg.Stream)
		if err != nil {
			return err
		}
		if traj.Termination != advanced.Completed {
			log.Printf("stream %v after %d of %d points", traj.Termination, traj.Len(), *streamN)
		}
		return printCurve(out, traj.Positions())

	case vstreamCmd.FullCommand():
		vstreamKick.apply(&cfg.Stream.Kick)
		vstreamStep.apply(&cfg.Stream.Step)
		traj, err := advanced.StreamWithConfig(*vstreamQ, *vstreamN, cfg.Stream)
		if err != nil {
			return err
		}
		if traj.Termination != advanced.Completed {
			log.Printf("stream %v after %d of %d points", traj.Termination, traj.Len(), *vstreamN)
		}
		frame := advanced.Inertial
		if *vstreamFrame == "2" {
			frame = advanced.Disc
		}
		curve, err := traj.Velocities(frame)
		if err != nil {
			return err
		}
		return printCurve(out, curve)

	case strmnxCmd.FullCommand():
		tp, err := advanced.Strmnx(*strmnxQ, *strmnxN, *strmnxAcc)
		if err != nil {
			return err
		}
		return printTurningPoint(out, tp)

	case inegCmd.FullCommand():
		opts := cfg.Eclipse
		opts.Star = parseStar(*inegStar)
		inegFill.apply(&opts.Fill)
		p := advanced.Vec{X: *inegX, Y: *inegY, Z: *inegZ}
		ingress, egress, err := advanced.IngressEgress(*inegQ, *inegIncl, p, opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%.8f %.8f\n", ingress, egress)
		return err

	case fblinkCmd.FullCommand():
		opts := cfg.Eclipse
		opts.Star = parseStar(*fblinkStar)
		fblinkFill.apply(&opts.Fill)
		p := advanced.Vec{X: *fblinkX, Y: *fblinkY, Z: *fblinkZ}
		eclipsed, err := advanced.Eclipsed(*fblinkQ, *fblinkIncl, *fblinkPhase, p, opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, eclipsed)
		return err

	case findqCmd.FullCommand():
		q, err := advanced.FindQ(*findqIncl, *findqWidth, cfg.FindQ)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%.6f\n", q)
		return err

	case plotCmd.FullCommand():
		if err := plotBinary(*plotOut, *plotQ, *plotN, *plotStream, *plotVelocity, cfg.Stream); err != nil {
			return err
		}
		log.Printf("wrote %s", *plotOut)
		return nil

	case drawCmd.FullCommand():
		return drawBinary(*drawOut, *drawQ, *drawScale, cfg.Stream)
	}
	return errors.Errorf("unknown command %q", command)
}
