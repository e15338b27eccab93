package deck

import "deckgen/pptx"

func buildChallenges(pg *page) {
	pg.gradientBackground(Blue, rustShade)

	setText(pg.textbox(in(0.5), in(0.5), in(5.5), in(0.4)), "Real Talk", body(20, Gold).bold(), center)

	p := pg.textbox(in(0.5), in(1.0), in(5.5), in(1.2)).GetParagraphs()[0]
	p.SetAlignment(center)
	addRun(p, "The ", title(34, White).bold())
	addRun(p, "Challenges", title(34, Coral).bold())
	addRun(p, "\nNobody Warns You About", title(34, White).bold())

	pg.image(pg.assets.Image("s11-challenges.png"), in(1.0), in(2.8), 0, in(4.0))

	challenges := []struct {
		heading, desc string
		color         pptx.Color
	}{
		{"Logistics & Coordination", "Scheduling 20-30 busy undergrads, booking rooms, managing budgets, handling permissions — the invisible work that makes everything else possible.", Coral},
		{"Curriculum Design", "How do you teach leadership to nursing and health students in a way that's practical, not theoretical? Finding the right balance was an ongoing experiment.", Gold},
		{"Topic Selection & Engagement", "Which leadership styles matter most? How do you keep participation high? Every choice had to be intentional and student-centered.", Teal},
	}
	for i, c := range challenges {
		y := in(0.8 + float64(i)*2.2)
		pg.accentCard(in(6.8), y, in(5.8), in(2.0), c.color)
		setText(pg.textbox(in(7.0), y+in(0.15), in(5.4), in(0.4)), c.heading, body(16, c.color).bold(), left)
		setText(pg.textbox(in(7.0), y+in(0.6), in(5.4), in(1.2)), c.desc, body(14, Light), left)
	}
}

func buildBreakthrough(pg *page) {
	pg.solidBackground(Navy)

	setText(pg.textbox(in(0.5), in(0.5), in(5.5), in(0.4)), "The Turning Point", body(20, Gold).bold(), center)

	p := pg.textbox(in(0.5), in(1.0), in(5.5), in(0.8)).GetParagraphs()[0]
	p.SetAlignment(center)
	addRun(p, "When It All ", title(34, White).bold())
	addRun(p, "Clicked", title(34, Gold).bold())

	pg.image(pg.assets.Image("s12-breakthrough.png"), in(1.0), in(2.2), 0, in(4.5))

	pg.rect(in(6.8), in(0.6), in(5.8), in(1.6), quoteFill)
	pg.rect(in(6.8), in(0.6), pt(4), in(1.6), Gold)
	setText(pg.textbox(in(7.0), in(0.7), in(5.4), in(1.4)),
		"The students were engaged from the start, in both workshops. What really changed was me. By the second workshop, I stopped anticipating their answers. I stopped planning how to respond before they finished speaking.",
		body(15, White).italic(), left)

	tb := pg.textbox(in(6.8), in(2.5), in(5.8), in(1.2))
	tb.SetWordWrap(true)
	p = tb.GetParagraphs()[0]
	addRun(p, "I learned to ", body(16, Light))
	addRun(p, "truly listen", body(16, Gold).bold())
	addRun(p, ", to be present in the moment, and to let the conversation flow naturally instead of controlling it.", body(16, Light))

	setText(pg.textbox(in(6.8), in(3.7), in(5.8), in(1.0)),
		"That shift made all the difference. I became more engaged, more curious, and more connected to the students I was serving.",
		body(16, Light), left)

	pg.image(pg.assets.Image("ws2-09.png"), in(6.8), in(4.9), in(2.8), 0)
	pg.image(pg.assets.Image("ws2-10.png"), in(9.8), in(4.9), in(2.8), 0)

	setText(pg.textbox(in(6.8), in(7.0), in(5.8), in(0.3)), "Case study slides that sparked real debate", body(11, Dim).italic(), center)
}

func buildImpact(pg *page) {
	pg.gradientBackground(Navy, tealShade)

	setText(pg.textbox(in(0.8), in(0.3), in(11), in(0.4)), "Impact So Far", body(20, Gold).bold(), center)

	p := pg.textbox(in(0.8), in(0.7), in(11), in(0.7)).GetParagraphs()[0]
	p.SetAlignment(center)
	addRun(p, "By the ", title(34, White).bold())
	addRun(p, "Numbers", title(34, Gold).bold())

	stats := []struct {
		number, label string
		color         pptx.Color
	}{
		{"20", "Undergraduate\nAmbassadors", Gold},
		{"4", "Events\nCompleted", Teal},
		{"4", "Leadership Styles\nTaught", Coral},
		{"$10K", "Diversity Innovation\nGrant Secured", BlueAccent},
	}
	for i, st := range stats {
		x := in(0.8 + float64(i)*3.1)
		pg.accentCard(x, in(1.8), in(2.8), in(3.5), st.color)
		setText(pg.textbox(x, in(2.0), in(2.8), in(1.5)), st.number, title(64, st.color).bold(), center)
		setText(pg.textbox(x, in(3.5), in(2.8), in(1.0)), st.label, body(16, Light).bold(), center)
	}

	tb := pg.textbox(in(1.0), in(5.8), in(11), in(0.8))
	tb.SetWordWrap(true)
	p = tb.GetParagraphs()[0]
	p.SetAlignment(center)
	addRun(p, "Connected to the ", body(17, Light))
	addRun(p, "Healthy Futures Initiative", body(17, Gold).bold())
	addRun(p, ", building pathways for underserved communities into health professions", body(17, Light))
}

func buildWhatsNext(pg *page) {
	pg.solidBackground(Blue)

	setText(pg.textbox(in(0.8), in(0.5), in(5.5), in(0.4)), "Looking Ahead", body(20, Gold).bold(), left)

	tb := pg.textbox(in(0.8), in(1.0), in(5.5), in(1.0))
	tb.SetWordWrap(true)
	p := tb.GetParagraphs()[0]
	addRun(p, "Spring 2026\n& ", title(36, White).bold())
	addRun(p, "Beyond", title(36, Gold).bold())

	pg.accentLine(in(0.8), in(2.3), 0)

	items := []struct{ lead, rest string }{
		{"Simulation Field Trip", "Grunin Center hands-on experience in Nursing, PA, OT, AT, PT"},
		{"Peer Mentorship Training", "Building public speaking & mentorship skills"},
		{"Future Leaders Symposium", "Full day mini-conference with certificates"},
		{"Community Outreach", "Connecting with local schools through Healthy Futures"},
	}
	tb = pg.textbox(in(0.8), in(2.6), in(5.5), in(4.5))
	tb.SetWordWrap(true)
	for i, it := range items {
		para := tb.GetParagraphs()[0]
		if i > 0 {
			para = tb.CreateParagraph()
		}
		para.SetSpaceBefore(1000)
		addRun(para, "● ", body(17, Gold))
		addRun(para, it.lead, body(17, White).bold())
		addRun(para, " — "+it.rest, body(17, Light))
	}

	steps := []struct {
		label string
		color pptx.Color
	}{
		{"Program Design", Blue},
		{"Ice Breakers", stepGreen},
		{"Workshops", Teal},
		{"Field Trips & Surveys", stepLime},
		{"Symposium & Outreach", Gold},
	}
	x := in(7.5)
	for i, st := range steps {
		y := in(1.0 + float64(i)*1.2)
		pg.oval(x, y+in(0.05), in(0.4), in(0.4), st.color, White)
		if i < len(steps)-1 {
			pg.rect(x+in(0.17), y+in(0.5), pt(3), in(0.75), connectorFill)
		}
		setText(pg.textbox(x+in(0.6), y, in(4), in(0.5)), st.label, body(17, st.color).bold(), left)
	}

	setText(pg.textbox(in(7.5), in(6.8), in(4.5), in(0.3)), "Program Growth Trajectory", body(13, Dim).italic(), center)
}

func buildLessons(pg *page) {
	pg.solidBackground(Navy)

	setText(pg.textbox(in(0.8), in(0.3), in(11), in(0.4)), "Lessons Learned", body(20, Gold).bold(), center)

	p := pg.textbox(in(0.8), in(0.7), in(11), in(0.7)).GetParagraphs()[0]
	p.SetAlignment(center)
	addRun(p, "What Building This Program ", title(34, White).bold())
	addRun(p, "Taught Me", title(34, Gold).bold())

	lessons := []struct {
		heading, desc string
		color         pptx.Color
	}{
		{"Start With People", "Great programs aren't built on paper — they're built on relationships. Listen to your students first, design second.", Gold},
		{"Iterate, Don't Perfect", "The first workshop wasn't perfect. The second was better. Progress beats perfection every time.", Teal},
		{"Leadership Is Learned By Doing", "I didn't just teach leadership — I had to practice it. Building this program was my own leadership lab.", Coral},
	}
	for i, l := range lessons {
		x := in(0.6 + float64(i)*4.1)
		pg.accentCard(x, in(1.8), in(3.8), in(4.8), l.color)
		setText(pg.textbox(x+in(0.2), in(2.2), in(3.4), in(0.6)), l.heading, body(20, l.color).bold(), center)
		setText(pg.textbox(x+in(0.2), in(3.0), in(3.4), in(3.0)), l.desc, body(16, Light), center)
	}
}

func buildThankYou(pg *page) {
	pg.solidBackground(Navy)

	setText(pg.textbox(in(0.8), in(0.3), in(11), in(0.4)), "Gratitude", body(20, Gold).bold(), center)

	p := pg.textbox(in(0.8), in(0.7), in(11), in(0.7)).GetParagraphs()[0]
	p.SetAlignment(center)
	addRun(p, "Thank ", title(38, White).bold())
	addRun(p, "You", title(38, Gold).bold())

	thanks := []struct {
		icon, name, desc string
		color            pptx.Color
	}{
		{"🎓", "Dr. Clifford", "Acting Dean & Mentor\nFor believing in the vision and guiding me every step", Gold},
		{"🏫", "SNHS Faculty & Staff", "For the resources, support, and trust to build something new", Teal},
		{"🤝", "20 Student Ambassadors", "For showing up, leaning in, and making this program come alive", Coral},
		{"🏆", "Scholarship Week Committee", "For the opportunity to share this journey with you today", BlueAccent},
	}
	for i, t := range thanks {
		x := in(0.5 + float64(i)*3.15)
		pg.accentCard(x, in(1.8), in(2.9), in(4.2), t.color)
		setText(pg.textbox(x, in(2.0), in(2.9), in(0.6)), t.icon, body(32, White), center)
		setText(pg.textbox(x+in(0.1), in(2.7), in(2.7), in(0.5)), t.name, body(17, t.color).bold(), center)
		setText(pg.textbox(x+in(0.1), in(3.3), in(2.7), in(2.2)), t.desc, body(14, Light), center)
	}

	setText(pg.textbox(in(1.0), in(6.3), in(11), in(0.5)), "None of this would have been possible without each of you", body(17, Dim).italic(), center)
}

func buildClosing(pg *page) {
	pg.gradientBackground(Teal, Gold)

	tb := pg.textbox(in(2.0), in(1.5), in(9.3), in(2.5))
	tb.SetWordWrap(true)
	p := tb.GetParagraphs()[0]
	p.SetAlignment(center)
	addRun(p, "The best way to learn\nleadership is to ", title(36, White).bold())
	addRun(p, "build something", title(36, Gold).bold())
	addRun(p, "\nthat matters.", title(36, White).bold())

	pg.accentLine(in(5.8), in(4.2), in(1.5))

	setText(pg.textbox(in(2.0), in(4.6), in(9.3), in(0.5)), "Thank you for your time and support.", body(17, Light), center)
	setText(pg.textbox(in(2.0), in(5.3), in(9.3), in(0.4)), "Bingjun Li, M.S.Ed.", body(18, White).bold(), center)
	setText(pg.textbox(in(2.0), in(5.7), in(9.3), in(0.4)), "Graduate Assistant · SNHS · Monmouth University", body(14, Dim), center)
	setText(pg.textbox(in(2.0), in(6.1), in(9.3), in(0.4)), "Mentored by Dr. Clifford, Acting Dean", body(14, Dim), center)
}
