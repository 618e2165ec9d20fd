// Package cpu describes the host processor. Generated code is plain Go
// and runs anywhere; the report only documents the machine that a timing
// or a float32 evaluation came from.
package cpu

import (
	"strings"

	"github.com/klauspost/cpuid/v2"
	"go.uber.org/zap"
)

// Notable are the features that change how fast the runtime kernels run
// once the Go compiler vectorizes them.
var Notable = [...]cpuid.FeatureID{
	cpuid.SSE4,
	cpuid.AVX,
	cpuid.AVX2,
	cpuid.FMA3,
	cpuid.AVX512F,
	cpuid.ASIMD,
}

type Report struct {
	Brand    string
	Vendor   string
	Physical int
	Logical  int
	Features []string
}

func Host() Report {
	return from(&cpuid.CPU)
}

func from(c *cpuid.CPUInfo) Report {
	r := Report{
		Brand:    strings.TrimSpace(c.BrandName),
		Vendor:   c.VendorString,
		Physical: c.PhysicalCores,
		Logical:  c.LogicalCores,
	}
	if r.Brand == "" {
		r.Brand = "unknown"
	}
	for _, id := range &Notable {
		if c.Supports(id) {
			r.Features = append(r.Features, id.String())
		}
	}
	return r
}

func (r Report) String() string {
	var b strings.Builder
	b.WriteString(r.Brand)
	if len(r.Features) != 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(r.Features, " "))
		b.WriteString(")")
	}
	return b.String()
}

// Fields is the report as log fields.
func (r Report) Fields() []zap.Field {
	return []zap.Field{
		zap.String("cpu", r.Brand),
		zap.Int("physicalCores", r.Physical),
		zap.Int("logicalCores", r.Logical),
		zap.Strings("cpuFeatures", r.Features),
	}
}
