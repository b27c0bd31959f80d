// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package display1

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/linuxdeepin/go-x11-client/ext/randr"
)

type ModeInfo struct {
	Id     uint32
	name   string
	Width  uint16
	Height uint16
	Rate   float64
}

func (mi ModeInfo) isZero() bool {
	return mi == ModeInfo{}
}

func (mi ModeInfo) String() string {
	return fmt.Sprintf("%dx%d@%s", mi.Width, mi.Height, formatRate(mi.Rate))
}

func toModeInfo(info randr.ModeInfo) ModeInfo {
	return ModeInfo{
		Id:     info.Id,
		name:   info.Name,
		Width:  info.Width,
		Height: info.Height,
		Rate:   calcModeRate(info),
	}
}

func toModeInfos(modes []randr.ModeInfo) []ModeInfo {
	result := make([]ModeInfo, 0, len(modes))
	for _, mode := range modes {
		result = append(result, toModeInfo(mode))
	}
	return result
}

func calcModeRate(info randr.ModeInfo) float64 {
	vTotal := float64(info.VTotal)
	if (info.ModeFlags & randr.ModeFlagDoubleScan) != 0 {
		/* doublescan doubles the number of lines */
		vTotal *= 2
	}
	if (info.ModeFlags & randr.ModeFlagInterlace) != 0 {
		/* interlace splits the frame into two fields */
		vTotal /= 2
	}

	if info.HTotal == 0 || vTotal == 0 {
		return 0
	}
	return float64(info.DotClock) / (float64(info.HTotal) * vTotal)
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func findMode(modes []ModeInfo, modeId uint32) ModeInfo {
	for _, modeInfo := range modes {
		if modeInfo.Id == modeId {
			return modeInfo
		}
	}
	return ModeInfo{}
}

// 匹配 1920x1080 或 1920x1080@60 这样的
var regModeSize = regexp.MustCompile(`^(\d+)x(\d+)(?:@(\d+(?:\.\d+)?))?$`)

// parseModeSize parses "WxH" with an optional "@rate" suffix, rate 0 means any.
func parseModeSize(s string) (width, height uint16, rate float64, err error) {
	match := regModeSize.FindStringSubmatch(s)
	if match == nil {
		return 0, 0, 0, fmt.Errorf("invalid mode size %q", s)
	}
	w, err := strconv.ParseUint(match[1], 10, 16)
	if err != nil {
		return 0, 0, 0, err
	}
	h, err := strconv.ParseUint(match[2], 10, 16)
	if err != nil {
		return 0, 0, 0, err
	}
	if match[3] != "" {
		rate, err = strconv.ParseFloat(match[3], 64)
		if err != nil {
			return 0, 0, 0, err
		}
	}
	return uint16(w), uint16(h), rate, nil
}
