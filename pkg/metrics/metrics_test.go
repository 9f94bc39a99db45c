package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecorder(t *testing.T) {
	Convey("Given a recorder on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		r := NewRecorder(WithRegistry(registry), WithNamespace("test"))

		Convey("When recording a session", func() {
			r.CaptureParsed()
			r.CaptureParsed()
			r.CaptureParsed()
			r.RelicAppended()
			r.RelicAppended()
			r.DuplicateSeen()
			r.SubStatsDropped(2)
			r.SubStatsDropped(0)
			r.CaptureFailed()
			r.ObserveOCR(40 * time.Millisecond)
			r.SessionFinished(3 * time.Second)

			Convey("Then the counters reflect it", func() {
				So(testutil.ToFloat64(r.captures), ShouldEqual, 3)
				So(testutil.ToFloat64(r.relics), ShouldEqual, 2)
				So(testutil.ToFloat64(r.duplicates), ShouldEqual, 1)
				So(testutil.ToFloat64(r.droppedSubStats), ShouldEqual, 2)
				So(testutil.ToFloat64(r.captureErrors), ShouldEqual, 1)
				So(testutil.ToFloat64(r.sessionSeconds), ShouldEqual, 3)
				So(testutil.CollectAndCount(r.ocrLatency), ShouldEqual, 1)
			})

			Convey("Then the textfile contains them", func() {
				path := filepath.Join(t.TempDir(), "out", "relicscan.prom")
				So(r.WriteTextfile(path), ShouldBeNil)

				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(strings.Contains(string(data), "test_relics_total 2"), ShouldBeTrue)
				So(strings.Contains(string(data), "test_ocr_latency_milliseconds_count 1"), ShouldBeTrue)
			})
		})
	})
}

func TestNilRecorder(t *testing.T) {
	Convey("Given a nil recorder", t, func() {
		var r *Recorder

		Convey("Then every method is a no-op", func() {
			So(func() {
				r.CaptureParsed()
				r.CaptureFailed()
				r.RelicAppended()
				r.DuplicateSeen()
				r.SubStatsDropped(3)
				r.ObserveOCR(time.Second)
				r.SessionFinished(time.Second)
			}, ShouldNotPanic)
			So(r.WriteTextfile("ignored"), ShouldBeNil)
			So(r.Registry(), ShouldBeNil)
		})
	})
}
