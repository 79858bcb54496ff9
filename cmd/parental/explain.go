package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bodgit/parental"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

type explanation struct {
	SerialNumber  string `yaml:"serial_number"`
	Date          string `yaml:"date"`
	ChecksumInput string `yaml:"checksum_input"`
	Checksum      string `yaml:"checksum"`
	XOR           string `yaml:"xor"`
	Roll          string `yaml:"roll"`
	Modulus       int    `yaml:"modulus"`
	Key           int    `yaml:"key"`
	MasterKey     string `yaml:"master_key"`
}

func hex32(x uint32) string {
	return fmt.Sprintf("0x%08x", x)
}

func explain(mk *parental.MasterKey) explanation {
	return explanation{
		SerialNumber:  mk.SerialNumber(),
		Date:          mk.Date(),
		ChecksumInput: mk.ChecksumInput(),
		Checksum:      hex32(mk.Checksum()),
		XOR:           hex32(parental.XOR),
		Roll:          hex32(parental.Roll),
		Modulus:       parental.Modulus,
		Key:           mk.Key(),
		MasterKey:     mk.String(),
	}
}

const labelWidth = 16

func (e explanation) writeText(w io.Writer) error {
	r := lipgloss.NewRenderer(w)

	label := r.NewStyle().Bold(true).Width(labelWidth)
	key := r.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	rows := []struct {
		name, value string
	}{
		{"Serial number", e.SerialNumber},
		{"Date", e.Date},
		{"Checksum input", e.ChecksumInput},
		{"Checksum", e.Checksum},
		{"XOR", e.XOR},
		{"Roll", e.Roll},
		{"Modulus", strconv.Itoa(e.Modulus)},
	}

	for _, row := range rows {
		if _, err := fmt.Fprintln(w, label.Render(row.name), row.value); err != nil {
			return fmt.Errorf("unable to write explanation: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w, label.Render("Master key"), key.Render(e.MasterKey)); err != nil {
		return fmt.Errorf("unable to write explanation: %w", err)
	}

	return nil
}

func (e explanation) writeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)

	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("unable to encode explanation: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("unable to encode explanation: %w", err)
	}

	return nil
}
