package tasks

// Stats tracks aggregate counters across a conversion run.
type Stats struct {
	PostsSeen      int
	Converted      int
	Skipped        int
	Failed         int
	AuthorsCreated int
	AuthorsReused  int
}

func (s *Stats) Add(other Stats) {
	s.PostsSeen += other.PostsSeen
	s.Converted += other.Converted
	s.Skipped += other.Skipped
	s.Failed += other.Failed
	s.AuthorsCreated += other.AuthorsCreated
	s.AuthorsReused += other.AuthorsReused
}
