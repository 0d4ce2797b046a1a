package metar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/i474232898/aerospotter/internal/common"
)

var (
	windGroup  = regexp.MustCompile(`^(\d{3}|VRB)(\d{2,3})(?:G(\d{2,3}))?KT$`)
	visGroup   = regexp.MustCompile(`^\d{4}$`)
	cloudGroup = regexp.MustCompile(`^(BKN|OVC)(\d{3})`)
)

// Parse extracts wind, visibility and ceiling from a raw METAR line.
//
// Parsing is lenient: missing groups fall back to defaults instead of
// failing (wind 0/0, visibility and ceiling Unrestricted). Only an empty
// report is rejected with ErrMalformedReport. Anything after RMK is ignored.
func Parse(raw string) (Observation, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return Observation{}, fmt.Errorf("%w: empty report", ErrMalformedReport)
	}
	for i, tok := range tokens {
		if tok == "RMK" {
			tokens = tokens[:i]
			break
		}
	}

	obs := Observation{
		Visibility: Unrestricted,
		Ceiling:    Unrestricted,
	}

	parseWind(tokens, &obs)

	if common.HasAnyToken(tokens, "CAVOK") {
		obs.CAVOK = true
		return obs, nil
	}

	for _, tok := range tokens {
		if visGroup.MatchString(tok) {
			obs.Visibility, _ = strconv.Atoi(tok)
			break
		}
	}

	for _, tok := range tokens {
		m := cloudGroup.FindStringSubmatch(tok)
		if m == nil {
			continue
		}
		hundreds, _ := strconv.Atoi(m[2])
		if ft := hundreds * 100; ft < obs.Ceiling {
			obs.Ceiling = ft
		}
	}

	return obs, nil
}

// parseWind fills wind fields from the first wind group only.
func parseWind(tokens []string, obs *Observation) {
	for _, tok := range tokens {
		m := windGroup.FindStringSubmatch(tok)
		if m == nil {
			continue
		}
		obs.WindSpeed, _ = strconv.Atoi(m[2])
		if m[3] != "" {
			obs.WindGust, _ = strconv.Atoi(m[3])
		}
		if m[1] == "VRB" {
			obs.Variable = true
			return
		}
		dir, _ := strconv.Atoi(m[1])
		obs.WindDirection = dir % 360
		return
	}
}
