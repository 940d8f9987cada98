/*
 * headers.go, part of pmx
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
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

package top

import (
	"regexp"
	"strconv"
	"strings"
)

// Utility functions

func qerr(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func parseints(s ...string) ([]int, error) {
	r := make([]int, 0, len(s))
	for _, v := range s {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}

func parsefloats(s ...string) ([]float64, error) {
	r := make([]float64, 0, len(s))
	for _, v := range s {
		i, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// cleanString removes the comment, if any, and the surrounding spaces
// of a line.
func cleanString(s string) string {
	f := strings.Split(s, ";")[0]
	return strings.Trim(f, "\r\n\t ")
}

type topHeader struct {
	wany  *regexp.Regexp
	known map[string]*regexp.Regexp
}

func newTopHeader() *topHeader {
	T := new(topHeader)
	T.wany = regexp.MustCompile(`^\[\p{Zs}*(.*?)\p{Zs}*\]$`)
	T.known = map[string]*regexp.Regexp{
		"atoms":         regexp.MustCompile(`^\[\p{Zs}*atoms\p{Zs}*\]$`),
		"bonds":         regexp.MustCompile(`^\[\p{Zs}*bonds\p{Zs}*\]$`),
		"angles":        regexp.MustCompile(`^\[\p{Zs}*angles\p{Zs}*\]$`),
		"dihedrals":     regexp.MustCompile(`^\[\p{Zs}*dihedrals\p{Zs}*\]$`),
		"moleculetype":  regexp.MustCompile(`^\[\p{Zs}*moleculetype\p{Zs}*\]$`),
		"atomtypes":     regexp.MustCompile(`^\[\p{Zs}*atomtypes\p{Zs}*\]$`),
		"bondtypes":     regexp.MustCompile(`^\[\p{Zs}*bondtypes\p{Zs}*\]$`),
		"angletypes":    regexp.MustCompile(`^\[\p{Zs}*angletypes\p{Zs}*\]$`),
		"dihedraltypes": regexp.MustCompile(`^\[\p{Zs}*dihedraltypes\p{Zs}*\]$`),
	}
	return T
}

// Is returns true if the line is a Gromacs header. It discards comments.
func (T *topHeader) Is(line string) bool {
	return T.wany.MatchString(cleanString(line))
}

// Which returns the name of the header in the line: one of the keys
// of the known map for the headers this package reads, the text between
// brackets for the others, and an empty string if the line is not a header.
func (T *topHeader) Which(line string) string {
	line = cleanString(line)
	m := T.wany.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	for k, v := range T.known {
		if v.MatchString(line) {
			return k
		}
	}
	return m[1]
}

// StringReader is the reading side of a bufio.Reader, which is all
// the parsers in this package need.
type StringReader interface {
	ReadString(byte) (string, error)
}
