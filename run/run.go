/*
 * run.go, part of goshower.
 *
 *
 * Copyright 2025 Jonas Schaefer <jschaefer{at}posteoDOTde>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package run configures and executes CORSIKA simulations: it fills the
// input-card template, runs the simulator from its own directory (CORSIKA
// limits the length of output paths, so products first land in a short
// scratch directory) and copies the products to the configured output
// directory.
package run

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	shower "github.com/jschaefer-hub/goshower"
)

//cardName is the file the filled-out input card is written to, in the
//current working directory.
const cardName = "input_particletracks.inp"

// Config holds the parameters of one simulation run.
type Config struct {
	RunNumber          int
	Primary            string  //particle name, resolved through the catalog
	EnergyGeV          float64 //energy of the primary
	ObservationLevelCM float64 //altitude of the observation level a.s.l.
	ZenithDeg          float64 //zenith angle of the incident primary
	OutputDir          string  //where the products end up; empty means the working directory
	FixedSeeds         bool    //true leaves the template's own SEED lines in place
}

// Validate resolves the primary particle name and checks the numeric
// parameters. It must pass before a card can be written.
func (c *Config) Validate() error {
	if _, err := shower.ParticleID(c.Primary); err != nil {
		return err
	}
	if c.EnergyGeV <= 0 {
		return fmt.Errorf("run: primary energy must be positive, got %g GeV", c.EnergyGeV)
	}
	if c.ObservationLevelCM < 0 {
		return fmt.Errorf("run: observation level must not be below sea level, got %g cm", c.ObservationLevelCM)
	}
	return nil
}

// Runner drives one CORSIKA executable with one input-card template.
type Runner struct {
	executable string
	template   string
	rng        *rand.Rand
	scratch    string //short-named directory the products land in first
}

// NewRunner returns a Runner for the given executable and input-card
// template. The random source feeds the SEED lines of the card; passing
// nil uses a time-seeded source, tests pass a fixed one.
func NewRunner(executable, templatePath string, rng *rand.Rand) *Runner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Runner{executable: executable, template: templatePath, rng: rng}
}

// Seeds returns four SEED definitions for the independent random number
// sequences of CORSIKA, one per line.
func (r *Runner) Seeds() string {
	lines := make([]string, 4)
	for i := range lines {
		first := 1e7 + r.rng.Int63n(1e9-1e7)
		second := 100 + r.rng.Int63n(900)
		lines[i] = fmt.Sprintf("SEED    %d    %d    0     seed for random number sequence %d", first, second, i+1)
	}
	return strings.Join(lines, "\n")
}

//cardData is what the input-card template gets to see.
type cardData struct {
	RunNumber       int
	Seeds           string
	Primary         int //the numeric species id, not the name
	EnergyGeV       float64
	ZenithDeg       float64
	ObservationCM   float64
	OutputDirectory string
}

// WriteCard fills the input-card template with the configuration and
// writes it to input_particletracks.inp in the working directory,
// returning the card's path. It also picks the scratch directory the
// simulation will write into.
func (r *Runner) WriteCard(c Config) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	tmpl, err := template.ParseFiles(r.template)
	if err != nil {
		return "", fmt.Errorf("run: cannot read input-card template: %w", err)
	}
	id, _ := shower.ParticleID(c.Primary) //already validated
	seeds := "*"
	if !c.FixedSeeds {
		seeds = r.Seeds()
	}
	r.scratch = uuid.NewString()
	data := cardData{
		RunNumber:       c.RunNumber,
		Seeds:           seeds,
		Primary:         id,
		EnergyGeV:       c.EnergyGeV,
		ZenithDeg:       c.ZenithDeg,
		ObservationCM:   c.ObservationLevelCM,
		OutputDirectory: "./" + r.scratch + "/sim_",
	}
	card, err := os.Create(cardName)
	if err != nil {
		return "", err
	}
	defer card.Close()
	if err := tmpl.Execute(card, data); err != nil {
		return "", fmt.Errorf("run: cannot fill input card: %w", err)
	}
	return cardName, nil
}

// Run executes the simulation for the given configuration: card on stdin,
// log into the scratch directory, products copied to c.OutputDir and the
// scratch directory removed afterwards. It blocks until CORSIKA exits.
func (r *Runner) Run(c Config) error {
	cardPath, err := r.WriteCard(c)
	if err != nil {
		return err
	}
	card, err := os.Open(cardPath)
	if err != nil {
		return err
	}
	defer card.Close()

	bindir := filepath.Dir(r.executable)
	scratch := filepath.Join(bindir, r.scratch)
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return err
	}
	logf, err := os.Create(filepath.Join(scratch, "corsika_output.log"))
	if err != nil {
		return err
	}
	cmd := exec.Command(r.executable)
	cmd.Dir = bindir
	cmd.Stdin = card
	cmd.Stdout = logf
	cmd.Stderr = logf
	runErr := cmd.Run()
	logf.Close()
	if runErr != nil {
		return fmt.Errorf("run: simulation failed: %w", runErr)
	}

	outdir := c.OutputDir
	if outdir == "" {
		outdir, err = os.Getwd()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return err
	}
	if err := copyProducts(scratch, outdir); err != nil {
		return err
	}
	return os.RemoveAll(scratch)
}

//copyProducts moves every regular file in src into dst.
func copyProducts(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		in, err := os.Open(filepath.Join(src, entry.Name()))
		if err != nil {
			return err
		}
		out, err := os.Create(filepath.Join(dst, entry.Name()))
		if err != nil {
			in.Close()
			return err
		}
		_, err = io.Copy(out, in)
		in.Close()
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}
