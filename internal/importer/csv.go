// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package importer

import "strings"

// parseCSV splits raw comma-separated text into a header row and data
// rows. The split is a plain comma split: embedded commas and escaped
// quotes are not supported, only surrounding quotes are stripped. Blank
// lines are dropped. This matches the files the directory has always
// accepted; exports use a proper CSV writer.
func parseCSV(data []byte) (headers []string, rows [][]string) {
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, nil
	}

	headers = splitLine(lines[0])
	for _, line := range lines[1:] {
		rows = append(rows, splitLine(line))
	}
	return headers, rows
}

func splitLine(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, `"`)
		p = strings.TrimSuffix(p, `"`)
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
