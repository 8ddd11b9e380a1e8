package engine_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/crtsim/internal/engine"
)

func finitePath(tr engine.Track) bool {
	for _, p := range tr.Path {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

var _ = Describe("Track", func() {
	var g engine.Geometry

	BeforeEach(func() {
		g = engine.DefaultGeometry()
	})

	DescribeTable("stays renderable for any input",
		func(mode engine.Mode, va, vd float64) {
			tr := engine.ComputeTrack(g, engine.Params{AcceleratingPotential: va, DeflectionPotential: vd, Mode: mode})

			Expect(len(tr.Path)).To(BeNumerically(">=", 2))
			Expect(finitePath(tr)).To(BeTrue())
			Expect(tr.Impact).To(BeNumerically(">=", 0))
			Expect(tr.Impact).To(BeNumerically("<=", g.TubeHeight))
		},
		Entry("uniform, nominal", engine.ModeUniform, 2000.0, 50.0),
		Entry("uniform, zero potential", engine.ModeUniform, 0.0, 50.0),
		Entry("uniform, negative potential", engine.ModeUniform, -500.0, -50.0),
		Entry("uniform, NaN potential", engine.ModeUniform, math.NaN(), 50.0),
		Entry("uniform, extreme deflection", engine.ModeUniform, 2000.0, 1e250),
		Entry("curved, nominal", engine.ModeCurved, 2000.0, 50.0),
		Entry("curved, zero potential", engine.ModeCurved, 0.0, 50.0),
		Entry("curved, infinite potential", engine.ModeCurved, math.Inf(1), -50.0),
		Entry("curved, extreme deflection", engine.ModeCurved, 10.0, -1e250),
	)

	Context("in uniform mode", func() {
		It("deflects upward for positive potential without saturating", func() {
			tr := engine.ComputeTrack(g, engine.Params{AcceleratingPotential: 2000, DeflectionPotential: 50})

			Expect(tr.Impact).To(BeNumerically(">", g.TubeHeight/2))
			Expect(tr.Impact).To(BeNumerically("<", g.TubeHeight))
			Expect(tr.Clipped).To(BeFalse())
		})

		It("hits the centre exactly with no deflection potential", func() {
			tr := engine.ComputeTrack(g, engine.Params{AcceleratingPotential: 2000})
			Expect(tr.Impact).To(Equal(g.TubeHeight / 2))
		})

		It("mirrors impacts for opposite potentials", func() {
			up := engine.ComputeTrack(g, engine.Params{AcceleratingPotential: 1500, DeflectionPotential: 30})
			down := engine.ComputeTrack(g, engine.Params{AcceleratingPotential: 1500, DeflectionPotential: -30})

			Expect(up.Impact - g.Centerline()).To(BeNumerically("~", g.Centerline()-down.Impact, 1e-12))
		})

		It("deflects less at higher accelerating potential", func() {
			soft := engine.ComputeTrack(g, engine.Params{AcceleratingPotential: 1000, DeflectionPotential: 20})
			stiff := engine.ComputeTrack(g, engine.Params{AcceleratingPotential: 4000, DeflectionPotential: 20})

			Expect(stiff.Deflection).To(BeNumerically("<", soft.Deflection))
			Expect(stiff.Deflection).To(BeNumerically("~", soft.Deflection/4, 1e-12))
		})
	})

	Context("in curved mode", func() {
		It("approximates the uniform impact", func() {
			p := engine.Params{AcceleratingPotential: 2000, DeflectionPotential: 50}
			uniform := engine.ComputeTrack(g, p)
			p.Mode = engine.ModeCurved
			curved := engine.ComputeTrack(g, p)

			Expect(curved.Mode).To(Equal(engine.ModeCurved))
			Expect(curved.Deflection).To(BeNumerically("~", uniform.Deflection, 0.05*uniform.Deflection))
		})
	})

	Context("with a lateral offset", func() {
		It("translates the zero-offset path rigidly", func() {
			p := engine.Params{AcceleratingPotential: 2000, DeflectionPotential: 25}
			base := engine.ComputeTrack(g, p)
			shifted := engine.ComputeTrackWithOffset(g, p, -0.006, 0)

			Expect(shifted.Path).To(HaveLen(len(base.Path)))
			for i := range base.Path {
				Expect(shifted.Path[i].X).To(Equal(base.Path[i].X))
				Expect(shifted.Path[i].Y + 0.006).To(BeNumerically("~", base.Path[i].Y, 1e-12))
			}
		})
	})

	Context("as a beam", func() {
		It("computes one ordered track per particle", func() {
			tracks := engine.ComputeBeam(g, engine.Params{AcceleratingPotential: 2000, DeflectionPotential: 10}, engine.BeamSpec{Count: 9, Spread: 0.016})

			Expect(tracks).To(HaveLen(9))
			for i := 1; i < len(tracks); i++ {
				Expect(tracks[i].Impact).To(BeNumerically(">", tracks[i-1].Impact))
			}
		})

		It("falls back to the central particle for an empty beam", func() {
			tracks := engine.ComputeBeam(g, engine.Params{AcceleratingPotential: 2000}, engine.BeamSpec{})
			Expect(tracks).To(HaveLen(1))
			Expect(tracks[0].Impact).To(Equal(g.TubeHeight / 2))
		})
	})
})

var _ = Describe("Validate", func() {
	It("accepts the default geometry", func() {
		Expect(engine.Validate(engine.DefaultGeometry())).To(Succeed())
	})

	DescribeTable("rejects broken geometry",
		func(mutate func(*engine.Geometry), field string) {
			g := engine.DefaultGeometry()
			mutate(&g)

			err := engine.Validate(g)
			Expect(err).To(MatchError(engine.ErrInvalidGeometry))

			var cfgErr *engine.ConfigurationError
			Expect(err).To(BeAssignableToTypeOf(cfgErr))
			Expect(err.(*engine.ConfigurationError).Field).To(Equal(field))
		},
		Entry("zero spacing", func(g *engine.Geometry) { g.PlateSpacing = 0 }, "plate_spacing"),
		Entry("plates before source", func(g *engine.Geometry) { g.DeflectionStart = 0.01 }, "deflection_start"),
		Entry("screen inside plates", func(g *engine.Geometry) { g.DetectionX = 0.2 }, "detection_x"),
		Entry("screen outside tube", func(g *engine.Geometry) { g.DetectionX = 0.6 }, "detection_x"),
		Entry("NaN height", func(g *engine.Geometry) { g.TubeHeight = math.NaN() }, "tube_height"),
		Entry("negative source", func(g *engine.Geometry) { g.SourceX = -0.1; g.DeflectionStart = 0.1 }, "source_x"),
	)
})

var _ = Describe("Mode", func() {
	DescribeTable("parses names",
		func(name string, want engine.Mode) {
			m, err := engine.ParseMode(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(Equal(want))
		},
		Entry("uniform", "uniform", engine.ModeUniform),
		Entry("electric", "Electric", engine.ModeUniform),
		Entry("curved", "curved", engine.ModeCurved),
		Entry("magnetic", " magnetic ", engine.ModeCurved),
	)

	It("rejects unknown names", func() {
		_, err := engine.ParseMode("helical")
		Expect(err).To(MatchError(engine.ErrUnknownMode))
	})

	It("round-trips through text", func() {
		text, err := engine.ModeCurved.MarshalText()
		Expect(err).NotTo(HaveOccurred())

		var m engine.Mode
		Expect(m.UnmarshalText(text)).To(Succeed())
		Expect(m).To(Equal(engine.ModeCurved))
	})
})
