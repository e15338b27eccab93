package deck

import "deckgen/pptx"

func buildWhatIBuilt(pg *page) {
	pg.solidBackground(Navy)

	setText(pg.textbox(in(0.8), in(0.3), in(10), in(0.4)), "What I Built", body(20, Gold).bold(), center)

	p := pg.textbox(in(0.8), in(0.8), in(11.5), in(0.7)).GetParagraphs()[0]
	p.SetAlignment(center)
	addRun(p, "Designing ", title(34, White).bold())
	addRun(p, "Everything", title(34, Gold).bold())
	addRun(p, " from Scratch", title(34, White).bold())

	cards := []struct {
		image, heading, desc string
		color                pptx.Color
	}{
		{"s5-curriculum.png", "Leadership Curriculum", "Transformational, democratic, adaptive & collaborative leadership workshops with case studies", Gold},
		{"s5-assessment.png", "Assessment Tools", "Leadership questionnaire & activity interest survey to measure growth and guide programming", Teal},
		{"s5-events.png", "Events & Workshops", "2 leadership workshops, 2 ice breaker events, plus full Spring 2026 programming calendar", Coral},
		{"s5-outreach.png", "Outreach Materials", "Healthy Futures flyer, program poster, promotional materials for recruitment & community partners", BlueAccent},
	}
	for i, c := range cards {
		x := in(0.5 + float64(i)*3.15)
		pg.accentCard(x, in(1.8), in(2.9), in(5.3), c.color)
		pg.image(pg.assets.Image(c.image), x+in(0.1), in(1.9), in(2.7), 0)
		setText(pg.textbox(x+in(0.15), in(4.7), in(2.6), in(0.5)), c.heading, body(16, c.color).bold(), left)
		setText(pg.textbox(x+in(0.15), in(5.2), in(2.6), in(1.5)), c.desc, body(13, Light), left)
	}
}

func buildTimeline(pg *page) {
	pg.solidBackground(Blue)

	setText(pg.textbox(in(0.8), in(0.3), in(11), in(0.4)), "The Journey", body(20, Gold).bold(), center)

	p := pg.textbox(in(0.8), in(0.7), in(11), in(0.7)).GetParagraphs()[0]
	p.SetAlignment(center)
	addRun(p, "Program ", title(34, White).bold())
	addRun(p, "Timeline", title(34, Gold).bold())

	pg.rect(in(0.8), in(1.8), in(11.5), pt(6), Teal)

	phases := []struct {
		image, phase, date, detail string
		color                      pptx.Color
	}{
		{"s6-foundation.png", "Foundation", "Fall 2025", "Grant Secured\nProgram Design\nRecruitment", Gold},
		{"s6-launch.png", "Launch", "Nov 2025", "Ice Breaker Events\nTeam Building\n20-30 Ambassadors", Teal},
		{"s6-workshops.png", "Workshops", "Nov-Dec 2025", "Leadership Training\nTransformational\nLeadership Focus", Coral},
		{"s6-growth.png", "Growth", "Spring 2026", "Simulation Field Trip\nMentorship Training\nInterest Surveys", BlueAccent},
		{"s6-future.png", "Future", "2026+", "Community Outreach\nLeaders Symposium\nHealthy Futures", White},
	}
	for i, ph := range phases {
		x := in(0.5 + float64(i)*2.5)
		dot := pg.rect(x+in(0.9), in(1.65), in(0.25), in(0.25), ph.color)
		dot.SetAutoShapeType(pptx.AutoShapeEllipse)
		pg.image(pg.assets.Image(ph.image), x+in(0.2), in(2.1), in(1.6), 0)
		setText(pg.textbox(x, in(4.2), in(2.2), in(0.4)), ph.phase, body(16, ph.color).bold(), center)
		setText(pg.textbox(x, in(4.6), in(2.2), in(0.3)), ph.date, body(13, Dim), center)
		setText(pg.textbox(x, in(5.0), in(2.2), in(1.5)), ph.detail, body(13, Light), center)
	}
}

// workshopGrid places four workshop slides two by two on the right half.
func (pg *page) workshopGrid(files [4]string) {
	positions := [4][2]float64{{7.0, 0.5}, {10.0, 0.5}, {7.0, 3.7}, {10.0, 3.7}}
	for i, name := range files {
		pg.image(pg.assets.Image(name), in(positions[i][0]), in(positions[i][1]), in(2.8), 0)
	}
}

func buildWorkshopOne(pg *page) {
	pg.solidBackground(Navy)

	setText(pg.textbox(in(0.8), in(0.5), in(5), in(0.4)), "Workshop 1, November 18, 2025", body(18, Gold).bold(), left)

	tb := pg.textbox(in(0.8), in(1.0), in(5.5), in(1.2))
	tb.SetWordWrap(true)
	p := tb.GetParagraphs()[0]
	addRun(p, "Leadership &\n", title(34, White).bold())
	addRun(p, "Communication Skills", title(34, Gold).bold())

	pg.accentLine(in(0.8), in(2.5), 0)

	setText(pg.textbox(in(0.8), in(2.8), in(5), in(2.5)),
		"My first workshop ever, designed from scratch. Introduced different leadership styles through real world case studies, group discussions, and interactive activities to build communication skills.",
		body(17, Light), left)

	pg.workshopGrid([4]string{"ws1-01.png", "ws1-03.png", "ws1-05.png", "ws1-09.png"})

	setText(pg.textbox(in(7.0), in(7.0), in(5.8), in(0.3)), "Actual slides from Workshop 1", body(11, Dim).italic(), center)
}

func buildEvolution(pg *page) {
	pg.gradientBackground(Navy, tealShade)

	setText(pg.textbox(in(0.8), in(0.3), in(11), in(0.4)), "My Growth as a Facilitator", body(20, Gold).bold(), center)

	p := pg.textbox(in(0.8), in(0.7), in(11), in(0.7)).GetParagraphs()[0]
	p.SetAlignment(center)
	addRun(p, "What I ", title(34, White).bold())
	addRun(p, "Learned", title(34, Gold).bold())
	addRun(p, " & Changed", title(34, White).bold())

	setText(pg.textbox(in(0.8), in(1.7), in(5.5), in(0.4)), "After Workshop 1, I noticed...", body(18, Coral).bold(), left)
	noticed := []string{
		"📝 Too much content delivery, not enough student interaction",
		"💬 Students wanted more discussion and real conversation",
		"⏱ Pacing felt rushed, needed to slow down and listen",
	}
	for i, item := range noticed {
		setText(pg.textbox(in(0.8), in(2.3+float64(i)*0.9), in(5.5), in(0.8)), item, body(16, Light), left)
	}

	setText(pg.textbox(in(7.0), in(1.7), in(5.5), in(0.4)), "So for Workshop 2, I...", body(18, Teal).bold(), left)
	changed := []string{
		"📊 Added a post-survey to capture feedback in real time",
		"🤝 Shifted to discussion-driven format, less lecturing, more facilitating",
		"🎓 Co-facilitated with Dr. Clifford, learned from watching her lead",
	}
	for i, item := range changed {
		setText(pg.textbox(in(7.0), in(2.3+float64(i)*0.9), in(5.5), in(0.8)), item, body(16, Light), left)
	}

	pg.rect(in(1.5), in(5.5), in(10), pt(6), Teal)
	setText(pg.textbox(in(0.8), in(5.7), in(3), in(0.4)), "Content Heavy", body(14, Coral).bold(), left)
	setText(pg.textbox(in(4.5), in(5.7), in(4), in(0.4)), "Listen first, then redesign", body(14, Dim).italic(), center)
	setText(pg.textbox(in(9.5), in(5.7), in(3), in(0.4)), "Student Centered", body(14, Teal).bold(), right)
}

func buildWorkshopTwo(pg *page) {
	pg.solidBackground(Navy)

	setText(pg.textbox(in(0.8), in(0.5), in(5), in(0.4)), "Workshop 2, December 2, 2025", body(18, Gold).bold(), left)

	tb := pg.textbox(in(0.8), in(1.0), in(5.5), in(1.2))
	tb.SetWordWrap(true)
	p := tb.GetParagraphs()[0]
	addRun(p, "Transformational\n", title(34, White).bold())
	addRun(p, "Leadership", title(34, Gold).bold())

	pg.accentLine(in(0.8), in(2.5), 0)

	tb = pg.textbox(in(0.8), in(2.8), in(5), in(2.5))
	tb.SetWordWrap(true)
	p = tb.GetParagraphs()[0]
	addRun(p, "A redesigned, discussion-driven workshop. Started with Simon Sinek's ", body(17, Light))
	addRun(p, `"Start With Why"`, body(17, Gold).bold())
	addRun(p, ", asked students to reflect on their own why, and explored team dynamics through Patrick Lencioni's ", body(17, Light))
	addRun(p, "Five Dysfunctions of a Team", body(17, White).bold())
	addRun(p, ".", body(17, Light))

	pg.workshopGrid([4]string{"ws2-01.png", "ws2-03.png", "ws2-04.png", "ws2-11.png"})

	setText(pg.textbox(in(7.0), in(7.0), in(5.8), in(0.3)), "Actual slides from Workshop 2", body(11, Dim).italic(), center)
}

func buildFeedback(pg *page) {
	pg.solidBackground(Blue)

	setText(pg.textbox(in(0.8), in(0.3), in(11), in(0.4)), "In Their Own Words", body(20, Gold).bold(), center)

	p := pg.textbox(in(0.8), in(0.7), in(11), in(0.7)).GetParagraphs()[0]
	p.SetAlignment(center)
	addRun(p, "What the ", title(34, White).bold())
	addRun(p, "Ambassadors", title(34, Gold).bold())
	addRun(p, " Said", title(34, White).bold())

	quotes := []struct {
		quote, source string
		color         pptx.Color
	}{
		{`"B did great! It was an effective way of hearing how I could actually be a good leader. Good to see a little bit of Dr. Clifford's personality too."`, "Post-workshop survey response", Gold},
		{`"I really loved this activity that we did with the nursing ambassadors. I can't wait to see what future events has in store for us."`, "Post-workshop survey response", Teal},
		{`"I would like to get a better communication style when working with a team... gain the confidence in public speaking and talking with families, faculty, potential students."`, "What students want from the program", Coral},
	}
	for i, q := range quotes {
		y := in(1.6 + float64(i)*1.8)
		pg.accentCard(in(0.6), y, in(6.2), in(1.6), q.color)
		setText(pg.textbox(in(0.8), y+in(0.1), in(5.8), in(1.1)), q.quote, body(14, White).italic(), left)
		setText(pg.textbox(in(0.8), y+in(1.2), in(5.8), in(0.3)), "— "+q.source, body(12, q.color), left)
	}

	pg.image(pg.assets.Image("survey-3.png"), in(7.2), in(1.8), in(5.5), 0)
	setText(pg.textbox(in(7.2), in(5.5), in(5.5), in(0.3)), "Activity Interest Survey Results (3 responses)", body(11, Dim).italic(), center)

	hl := pg.rect(in(7.5), in(6.0), in(5.0), in(1.0), highlightFill)
	hl.SetAutoShapeType(pptx.AutoShapeRoundedRect)
	hl.SetBorder(pptx.NewBorder().SetSolid(Gold, pt(1)))

	setText(pg.textbox(in(7.6), in(6.1), in(4.8), in(0.4)), "Leadership & Communication: 100% interest", body(15, Gold).bold(), center)
	setText(pg.textbox(in(7.6), in(6.5), in(4.8), in(0.3)), "Students want practical, interactive experiences", body(13, Dim), center)
}
