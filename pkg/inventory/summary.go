package inventory

import "github.com/raulmeloferreira/maven-mapper/pkg/logger"

// Summary tallies one extraction run.
type Summary struct {
	Projects int
	Edges    int
	Failures []Failure
}

// Record adds r to the summary.
func (s *Summary) Record(r Result) {
	if r.Err != nil {
		s.Failures = append(s.Failures, Failure{Path: r.Path, Kind: Classify(r.Err), Err: r.Err})
		return
	}
	s.Projects++
	s.Edges += len(r.Project.Dependencies)
}

// Log writes the run totals, and each failure at debug level.
func (s *Summary) Log(log logger.Logger) {
	for _, f := range s.Failures {
		log.Debug("Failed path", logger.F("path", f.Path), logger.F("kind", f.Kind))
	}
	log.Info("Extraction complete",
		logger.F("projects", s.Projects),
		logger.F("dependencies", s.Edges),
		logger.F("failures", len(s.Failures)))
}
