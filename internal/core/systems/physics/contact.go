package physics

// Contact is one overlapping pair found during a sub-step.
type Contact struct {
	A, B    BodyHandle
	Trigger bool
	// Normal points from A to B. Zero for trigger contacts.
	Normal Vector3
	// Impulse is the scalar applied along Normal; zero when the pair was
	// already separating or is a trigger.
	Impulse float64
	SubStep uint64
}

// Involves reports whether h is one side of the contact.
func (c Contact) Involves(h BodyHandle) bool { return c.A == h || c.B == h }

// Other returns the handle opposite h.
func (c Contact) Other(h BodyHandle) BodyHandle {
	if c.A == h {
		return c.B
	}
	return c.A
}

// RaycastHit is the nearest body surface struck by a ray.
type RaycastHit struct {
	Point    Vector3
	Normal   Vector3
	Distance float64
	Body     BodyHandle
}

// RaycastOptions narrows which bodies a ray can hit.
type RaycastOptions struct {
	IgnoreTriggers bool
	Mask           CollisionLayer
	Exclude        []BodyHandle
}

// Stats summarizes the work done by the most recent Step call.
type Stats struct {
	SubSteps        int
	DroppedTime     float64
	Candidates      int
	PhysicalContact int
	TriggerContact  int
	Resolved        int
	TotalSubSteps   uint64
}
