/*
 * files_test.go, part of goshower.
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

package shower

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "sim_000001.track_em")
	touch(t, dir, "sim_000001.track_mu.gz")
	touch(t, dir, "sim_000001.cherenkov_iact.zst")
	touch(t, dir, "corsika_output.log") //noise, must be ignored

	files, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if files.EM != filepath.Join(dir, "sim_000001.track_em") {
		t.Errorf("EM path: got %q", files.EM)
	}
	if files.Muon != filepath.Join(dir, "sim_000001.track_mu.gz") {
		t.Errorf("Muon path: got %q", files.Muon)
	}
	if files.Hadron != "" {
		t.Errorf("Hadron path should be absent, got %q", files.Hadron)
	}
	if files.Cherenkov != filepath.Join(dir, "sim_000001.cherenkov_iact.zst") {
		t.Errorf("Cherenkov path: got %q", files.Cherenkov)
	}
}

func TestDiscoverNothing(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "corsika_output.log")
	_, err := Discover(dir)
	var missing *MissingInputError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingInputError, got %v", err)
	}
	if !missing.Critical() {
		t.Error("a missing input must be critical")
	}
}

func TestTracksOrder(t *testing.T) {
	f := Files{EM: "a", Muon: "b", Hadron: "c"}
	got := f.Tracks()
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("concatenation order %v, want %v", got, want)
		}
	}
}
