package deck

import "deckgen/pptx"

const (
	left   = pptx.HorizontalLeft
	center = pptx.HorizontalCenter
	right  = pptx.HorizontalRight
)

func buildTitle(pg *page) {
	pg.gradientBackground(Navy, Teal)

	tb := pg.textbox(in(0.8), in(0.5), in(6), in(0.5))
	setText(tb, "● Monmouth University Scholarship Week 2026", body(16, Gold).bold(), left)

	tb = pg.textbox(in(0.8), in(1.2), in(6.5), in(3.0))
	tb.SetWordWrap(true)
	p := tb.GetParagraphs()[0]
	addRun(p, "Building\n", title(52, White).bold())
	addRun(p, "Leaders\n", title(52, Gold).bold())
	addRun(p, "from the ", title(36, Dim).bold())
	addRun(p, "Ground Up", title(44, Teal).bold())

	pg.accentLine(in(0.8), in(4.4), in(2))

	tb = pg.textbox(in(0.8), in(4.7), in(6), in(1.2))
	tb.SetWordWrap(true)
	p = tb.GetParagraphs()[0]
	addRun(p, "How a Graduate Assistant Designed, Launched,\nand Grew the ", body(18, Light))
	addRun(p, "SNHS Student\nAmbassador Program", body(18, Gold).bold())

	// Presenter card.
	pg.card(in(7.8), in(0.8), in(3.3), in(4.5))
	setText(pg.textbox(in(7.9), in(1.0), in(3.1), in(0.3)), "PRESENTED BY", body(10, Dim), center)
	setText(pg.textbox(in(7.9), in(1.4), in(3.1), in(0.6)), "Bingjun Li", title(32, White).bold(), center)
	setText(pg.textbox(in(7.9), in(2.0), in(3.1), in(0.4)), "M.S.Ed.", body(16, Gold).bold(), center)
	setText(pg.textbox(in(7.9), in(2.5), in(3.1), in(0.4)), "Graduate Assistant", body(16, Light), center)
	setText(pg.textbox(in(7.9), in(3.2), in(3.1), in(0.3)), "— MENTORED BY —", body(9, Teal).bold(), center)
	setText(pg.textbox(in(7.9), in(3.5), in(3.1), in(0.5)), "Dr. Clifford", title(24, Gold).bold(), center)
	setText(pg.textbox(in(7.9), in(4.0), in(3.1), in(0.4)), "Acting Dean, SNHS", body(13, Dim), center)

	pg.image(pg.assets.Logo, in(11.4), in(1.2), 0, in(3.8))
}

func buildHook(pg *page) {
	pg.solidBackground(Navy)

	setText(pg.textbox(in(0.8), in(1.0), in(5.5), in(0.6)), "It started with a conversation", title(24, Dim), left)

	tb := pg.textbox(in(0.8), in(1.7), in(5.5), in(1.2))
	tb.SetWordWrap(true)
	p := tb.GetParagraphs()[0]
	addRun(p, "A ", title(36, White).bold())
	addRun(p, "shared vision", title(36, Gold).bold())
	addRun(p, ",\na mentor, and a plan", title(36, White).bold())

	// Quote block with a gold left edge.
	pg.rect(in(0.8), in(3.3), in(5.5), in(1.5), quoteFill)
	pg.rect(in(0.8), in(3.3), pt(4), in(1.5), Gold)

	setText(pg.textbox(in(1.0), in(3.4), in(5.2), in(1.3)),
		"Dr. Clifford shared her ideas for a student leadership program. We brainstormed events, surveyed students, and shaped the workshops together based on real feedback.",
		body(17, White).italic(), left)
	setText(pg.textbox(in(0.8), in(5.0), in(5.5), in(0.5)), "With her guidance, I built it from the ground up.", body(17, Light), left)

	pg.image(pg.assets.Image("s2-hook.png"), in(7.0), in(0.5), 0, in(6.3))
}

func buildWhoAmI(pg *page) {
	pg.solidBackground(Blue)

	setText(pg.textbox(in(0.8), in(0.5), in(5.5), in(0.4)), "Who Am I", body(20, Gold).bold(), left)

	tb := pg.textbox(in(0.8), in(1.0), in(5.5), in(1.2))
	tb.SetWordWrap(true)
	p := tb.GetParagraphs()[0]
	addRun(p, "From Classroom\nto ", title(36, White).bold())
	addRun(p, "Program Builder", title(36, Gold).bold())

	pg.accentLine(in(0.8), in(2.4), 0)

	bullets := []struct{ lead, rest string }{
		{"Bingjun Li", " — M.S.Ed. Graduate Assistant"},
		{"", "Assigned to SNHS under Dr. Clifford"},
		{"", "Tasked with building the Student Ambassador Program from concept to reality"},
		{"", "Education background meeting healthcare leadership — a unique intersection"},
	}
	tb = pg.textbox(in(0.8), in(2.7), in(5.5), in(4.0))
	tb.SetWordWrap(true)
	for i, b := range bullets {
		para := tb.GetParagraphs()[0]
		if i > 0 {
			para = tb.CreateParagraph()
		}
		para.SetSpaceBefore(800)
		addRun(para, "● ", body(17, Gold))
		if b.lead != "" {
			addRun(para, b.lead, body(17, White).bold())
		}
		addRun(para, b.rest, body(17, Light))
	}

	// Intersection of the two disciplines.
	pg.oval(in(7.5), in(1.5), in(2.5), in(2.5), educationFill, Gold)
	tb = pg.textbox(in(7.7), in(2.2), in(2.1), in(1.2))
	setText(tb, "🎓 Education", body(18, Gold).bold(), center)
	addParagraph(tb, "Curriculum · Pedagogy\nAssessment", body(12, Light), center)

	pg.oval(in(9.8), in(1.5), in(2.5), in(2.5), careFill, Teal)
	tb = pg.textbox(in(10.0), in(2.2), in(2.1), in(1.2))
	setText(tb, "🩺 Healthcare", body(18, Teal).bold(), center)
	addParagraph(tb, "Leadership · Clinical\nCommunity", body(12, Light), center)

	pg.oval(in(8.8), in(4.5), in(2.2), in(2.2), programFill, Coral)
	setText(pg.textbox(in(8.9), in(4.9), in(2.0), in(1.4)), "Student\nAmbassador\nProgram", body(14, White).bold(), center)

	setText(pg.textbox(in(7.5), in(6.9), in(4.8), in(0.4)), "Where education meets healthcare leadership", body(13, Dim).italic(), center)
}

func buildMission(pg *page) {
	pg.gradientBackground(Navy, tealShade)

	setText(pg.textbox(in(0.8), in(0.5), in(10), in(0.4)), "The Mission", body(20, Gold).bold(), left)
	setText(pg.textbox(in(0.8), in(1.0), in(10), in(0.8)), "What Is the Student Ambassador Program?", title(36, White).bold(), left)

	pg.accentLine(in(0.8), in(2.0), 0)

	tb := pg.textbox(in(0.8), in(2.3), in(10), in(1.0))
	tb.SetWordWrap(true)
	p := tb.GetParagraphs()[0]
	addRun(p, "A ", body(18, Light))
	addRun(p, "one-year leadership development program", body(18, Gold).bold())
	addRun(p, " for 20-30 SNHS undergraduate students who represent the school, lead health promotion initiatives, and grow as future healthcare leaders.", body(18, Light))

	tags := []struct {
		text  string
		color pptx.Color
	}{
		{"Transformational", Gold},
		{"Democratic", Teal},
		{"Adaptive", Coral},
		{"Collaborative", Gold},
	}
	tagX := in(0.8)
	for _, tag := range tags {
		s := pg.slide.CreateAutoShape().SetAutoShapeType(pptx.AutoShapeRoundedRect)
		s.SetBounds(tagX, in(3.5), in(2.2), in(0.5))
		s.SetSolidFill(quarter(tag.color))
		p := s.GetActiveParagraph()
		p.SetAlignment(center)
		addRun(p, tag.text, themed(15, tag.color).bold())
		tagX += in(2.4)
	}

	pillars := []struct {
		icon, label, sub string
		color            pptx.Color
	}{
		{"🎯", "Leadership\nTraining", "Workshops, styles,\ncase studies", Gold},
		{"🤝", "Community\nOutreach", "Healthy Futures,\nlocal schools", Teal},
		{"📈", "Professional\nDevelopment", "Public speaking,\nmentorship", Coral},
		{"🩺", "Health Career\nExposure", "Simulations,\nfield trips", BlueAccent},
	}
	for i, pl := range pillars {
		x := in(0.8 + float64(i)*3.1)
		pg.rect(x, in(4.5), in(2.8), pt(4), pl.color)
		pg.accentCard(x, in(4.7), in(2.8), in(2.5), pl.color)
		setText(pg.textbox(x, in(4.8), in(2.8), in(0.5)), pl.icon, body(28, White), center)
		setText(pg.textbox(x, in(5.3), in(2.8), in(0.8)), pl.label, body(16, pl.color).bold(), center)
		setText(pg.textbox(x, in(6.1), in(2.8), in(0.8)), pl.sub, body(13, Light), center)
	}
}
