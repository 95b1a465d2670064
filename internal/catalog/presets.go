package catalog

import "github.com/san-kum/easelab/internal/motion"

type props = motion.Props
type opts = motion.Options

var (
	num  = motion.Num
	text = motion.Text
)

const (
	el    = motion.SelectorElement
	items = motion.SelectorItems
)

var categories = []Category{
	{
		ID: "entering", Label: "ENTERING", Description: "Elements materializing from void", Icon: "⟶", Color: "cyan",
		variants: []Variant{
			{
				ID: "fadeUp", Label: "Fade + Slide Up", Ease: "back.out(1.7)", Duration: 0.5,
				Code: `gsap.from(".element", {
  y: 60,
  opacity: 0,
  ease: "back.out(1.7)",
  duration: 0.5
});`,
				Effect: from(el, props{motion.KeyY: num(60), motion.KeyOpacity: num(0)}, opts{Ease: "back.out(1.7)", Duration: 0.5}),
				Mirror: fromTo(el,
					props{motion.KeyY: num(60), motion.KeyOpacity: num(0)},
					props{motion.KeyY: num(0), motion.KeyOpacity: num(1)},
					opts{Ease: "back.out(1.7)", Duration: 0.5, Yoyo: true, Repeat: 1}),
			},
			{
				ID: "fadeScale", Label: "Fade + Scale", Ease: "back.out(1.7)", Duration: 0.5,
				Code: `gsap.from(".element", {
  scale: 0.8,
  opacity: 0,
  ease: "back.out(1.7)",
  duration: 0.5
});`,
				Effect: from(el, props{motion.KeyScale: num(0.8), motion.KeyOpacity: num(0)}, opts{Ease: "back.out(1.7)", Duration: 0.5}),
				Mirror: fromTo(el,
					props{motion.KeyScale: num(0.8), motion.KeyOpacity: num(0)},
					props{motion.KeyScale: num(1), motion.KeyOpacity: num(1)},
					opts{Ease: "back.out(1.7)", Duration: 0.5, Yoyo: true, Repeat: 1}),
			},
			{
				ID: "slideRight", Label: "Slide from Side", Ease: "power3.out", Duration: 0.5,
				Code: `gsap.from(".element", {
  x: -100,
  opacity: 0,
  ease: "power3.out",
  duration: 0.5
});`,
				Effect: from(el, props{motion.KeyX: num(-100), motion.KeyOpacity: num(0)}, opts{Ease: "power3.out", Duration: 0.5}),
				Mirror: fromTo(el,
					props{motion.KeyX: num(-100), motion.KeyOpacity: num(0)},
					props{motion.KeyX: num(0), motion.KeyOpacity: num(1)},
					opts{Ease: "power3.out", Duration: 0.5, Yoyo: true, Repeat: 1}),
			},
			{
				ID: "popIn", Label: "Pop In (Playful)", Ease: "elastic.out(1, 0.5)", Duration: 0.8,
				Code: `gsap.from(".element", {
  scale: 0,
  ease: "elastic.out(1, 0.5)",
  duration: 0.8
});`,
				Effect: from(el, props{motion.KeyScale: num(0)}, opts{Ease: "elastic.out(1, 0.5)", Duration: 0.8}),
				Mirror: fromTo(el,
					props{motion.KeyScale: num(0)},
					props{motion.KeyScale: num(1)},
					opts{Ease: "elastic.out(1, 0.5)", Duration: 0.8, Yoyo: true, Repeat: 1}),
			},
		},
	},
	{
		ID: "exiting", Label: "EXITING", Description: "Elements dissolving into darkness", Icon: "⟵", Color: "magenta",
		variants: []Variant{
			{
				ID: "fadeOut", Label: "Fade + Slide Down", Ease: "power2.in", Duration: 0.3,
				Code: `gsap.to(".element", {
  y: 60,
  opacity: 0,
  ease: "power2.in",
  duration: 0.3
});`,
				Effect: to(el, props{motion.KeyY: num(60), motion.KeyOpacity: num(0)}, opts{Ease: "power2.in", Duration: 0.3}),
			},
			{
				ID: "flyAway", Label: "Fly Away", Ease: "power2.in / power3.in", Duration: 0.4,
				Code: `gsap.timeline()
  .to(".element", { x: -20, duration: 0.1, ease: "power2.in" })
  .to(".element", { x: 300, opacity: 0, duration: 0.3, ease: "power3.in" });`,
				Effect: timeline(
					step(motion.MethodTo, el, nil, props{motion.KeyX: num(-20)}, opts{Ease: "power2.in", Duration: 0.1}),
					step(motion.MethodTo, el, nil, props{motion.KeyX: num(300), motion.KeyOpacity: num(0)}, opts{Ease: "power3.in", Duration: 0.3}),
				),
			},
			{
				ID: "scaleOut", Label: "Scale Out", Ease: "power2.in", Duration: 0.25,
				Code: `gsap.to(".element", {
  scale: 0.8,
  opacity: 0,
  ease: "power2.in",
  duration: 0.25
});`,
				Effect: to(el, props{motion.KeyScale: num(0.8), motion.KeyOpacity: num(0)}, opts{Ease: "power2.in", Duration: 0.25}),
			},
		},
	},
	{
		ID: "transform", Label: "TRANSFORM", Description: "Morphing visible states", Icon: "◈", Color: "yellow",
		variants: []Variant{
			{
				ID: "expand", Label: "Expand", Ease: "back.inOut(1.4)", Duration: 0.5,
				Code: `gsap.to(".element", {
  scale: 1.3,
  ease: "back.inOut(1.4)",
  duration: 0.5
});`,
				Effect: to(el, props{motion.KeyScale: num(1.3)}, opts{Ease: "back.inOut(1.4)", Duration: 0.5}),
			},
			{
				ID: "widthExpand", Label: "Width Expand", Ease: "back.inOut(1.4)", Duration: 0.5,
				Code: `gsap.to(".element", {
  scaleX: 1.5,
  ease: "back.inOut(1.4)",
  duration: 0.5
});`,
				Effect: to(el, props{motion.KeyScaleX: num(1.5)}, opts{Ease: "back.inOut(1.4)", Duration: 0.5}),
			},
			{
				ID: "rotate", Label: "Rotate", Ease: "back.inOut(1.7)", Duration: 0.6,
				Code: `gsap.to(".element", {
  rotation: 180,
  ease: "back.inOut(1.7)",
  duration: 0.6
});`,
				Effect: to(el, props{motion.KeyRotation: num(180)}, opts{Ease: "back.inOut(1.7)", Duration: 0.6}),
			},
			{
				ID: "morphColor", Label: "Morph Color", Ease: "power2.inOut", Duration: 0.4,
				Code: `gsap.to(".element", {
  backgroundColor: "#10b981",
  ease: "power2.inOut",
  duration: 0.4
});`,
				Effect: to(el, props{motion.KeyBackgroundColor: text("#10b981")}, opts{Ease: "power2.inOut", Duration: 0.4}),
			},
		},
	},
	{
		ID: "hover", Label: "HOVER", Description: "Micro-interactions", Icon: "◉", Color: "green",
		variants: []Variant{
			{
				ID: "subtle", Label: "Subtle", Ease: "power2.out", Duration: 0.2,
				Code: `gsap.to(".element", {
  scale: 1.02,
  ease: "power2.out",
  duration: 0.2
});`,
				Effect: to(el, props{motion.KeyScale: num(1.02)}, opts{Ease: "power2.out", Duration: 0.2}),
			},
			{
				ID: "playful", Label: "Playful", Ease: "back.out(3)", Duration: 0.3,
				Code: `gsap.to(".element", {
  scale: 1.08,
  ease: "back.out(3)",
  duration: 0.3
});`,
				Effect: to(el, props{motion.KeyScale: num(1.08)}, opts{Ease: "back.out(3)", Duration: 0.3}),
			},
			{
				ID: "lift", Label: "Lift", Ease: "power2.out", Duration: 0.25,
				Code: `gsap.to(".element", {
  y: -8,
  boxShadow: "0 20px 40px rgba(0,0,0,0.2)",
  ease: "power2.out",
  duration: 0.25
});`,
				Effect: to(el, props{motion.KeyY: num(-8), motion.KeyBoxShadow: text("0 20px 40px rgba(0,0,0,0.2)")}, opts{Ease: "power2.out", Duration: 0.25}),
			},
		},
	},
	{
		ID: "feedback", Label: "FEEDBACK", Description: "User response signals", Icon: "⚡", Color: "orange",
		variants: []Variant{
			{
				ID: "shake", Label: "Error Shake", Ease: "elastic.out(1, 0.3)", Duration: 0.5,
				Code: `gsap.to(".element", {
  x: 15,
  ease: "elastic.out(1, 0.3)",
  duration: 0.5,
  yoyo: true,
  repeat: 3
});`,
				Effect: to(el, props{motion.KeyX: num(15)}, opts{Ease: "elastic.out(1, 0.3)", Duration: 0.5, Yoyo: true, Repeat: 3}),
			},
			{
				ID: "pulse", Label: "Attention Pulse", Ease: "power2.inOut", Duration: 0.3,
				Code: `gsap.to(".element", {
  scale: 1.1,
  ease: "power2.inOut",
  duration: 0.3,
  yoyo: true,
  repeat: 1
});`,
				Effect: to(el, props{motion.KeyScale: num(1.1)}, opts{Ease: "power2.inOut", Duration: 0.3, Yoyo: true, Repeat: 1}),
			},
			{
				ID: "success", Label: "Success Bounce", Ease: "back.out(4) / elastic.out", Duration: 0.8,
				Code: `gsap.timeline()
  .to(".element", { scale: 1.3, ease: "back.out(4)", duration: 0.2 })
  .to(".element", { scale: 1, ease: "elastic.out(1, 0.4)", duration: 0.6 });`,
				Effect: timeline(
					step(motion.MethodTo, el, nil, props{motion.KeyScale: num(1.3)}, opts{Ease: "back.out(4)", Duration: 0.2}),
					step(motion.MethodTo, el, nil, props{motion.KeyScale: num(1)}, opts{Ease: "elastic.out(1, 0.4)", Duration: 0.6}),
				),
			},
		},
	},
	{
		ID: "continuous", Label: "CONTINUOUS", Description: "Infinite motion loops", Icon: "∞", Color: "purple",
		variants: []Variant{
			{
				ID: "float", Label: "Floating", Ease: "sine.inOut", Duration: 2,
				Code: `gsap.to(".element", {
  y: -15,
  ease: "sine.inOut",
  duration: 2,
  yoyo: true,
  repeat: -1
});`,
				Effect: to(el, props{motion.KeyY: num(-15)}, opts{Ease: "sine.inOut", Duration: 2, Yoyo: true, Repeat: -1}),
			},
			{
				ID: "pulse", Label: "Breathing Pulse", Ease: "sine.inOut", Duration: 1.5,
				Code: `gsap.to(".element", {
  scale: 1.05,
  opacity: 0.8,
  ease: "sine.inOut",
  duration: 1.5,
  yoyo: true,
  repeat: -1
});`,
				Effect: to(el, props{motion.KeyScale: num(1.05), motion.KeyOpacity: num(0.8)}, opts{Ease: "sine.inOut", Duration: 1.5, Yoyo: true, Repeat: -1}),
			},
			{
				ID: "rotate", Label: "Slow Rotate", Ease: "none", Duration: 4,
				Code: `gsap.to(".element", {
  rotation: 360,
  ease: "none",
  duration: 4,
  repeat: -1
});`,
				Effect: to(el, props{motion.KeyRotation: num(360)}, opts{Ease: "none", Duration: 4, Repeat: -1}),
			},
		},
	},
	{
		ID: "threeD", Label: "3D", Description: "Perspective transforms", Icon: "⬒", Color: "blue",
		variants: []Variant{
			{
				ID: "flip", Label: "Card Flip", Ease: "power2.inOut", Duration: 0.6,
				Code: `gsap.to(".element", {
  rotateY: 180,
  ease: "power2.inOut",
  duration: 0.6,
  transformPerspective: 1000
});`,
				Effect: to(el, props{motion.KeyRotateY: num(180), motion.KeyTransformPerspective: num(1000)}, opts{Ease: "power2.inOut", Duration: 0.6}),
			},
			{
				ID: "foldDown", Label: "Fold Down", Ease: "power3.out", Duration: 0.5,
				Code: `gsap.from(".element", {
  rotateX: -90,
  ease: "power3.out",
  duration: 0.5,
  transformOrigin: "top center",
  transformPerspective: 800
});`,
				Effect: from(el, props{
					motion.KeyRotateX:              num(-90),
					motion.KeyTransformOrigin:      text("top center"),
					motion.KeyTransformPerspective: num(800),
				}, opts{Ease: "power3.out", Duration: 0.5}),
				Mirror: fromTo(el,
					props{
						motion.KeyRotateX:              num(-90),
						motion.KeyTransformOrigin:      text("top center"),
						motion.KeyTransformPerspective: num(800),
					},
					props{motion.KeyRotateX: num(0)},
					opts{Ease: "power3.out", Duration: 0.5, Yoyo: true, Repeat: 1}),
			},
			{
				ID: "tilt", Label: "Tilt", Ease: "power2.out", Duration: 0.4,
				Code: `gsap.to(".element", {
  rotateX: 10,
  rotateY: -10,
  ease: "power2.out",
  duration: 0.4,
  transformPerspective: 1000
});`,
				Effect: to(el, props{motion.KeyRotateX: num(10), motion.KeyRotateY: num(-10), motion.KeyTransformPerspective: num(1000)}, opts{Ease: "power2.out", Duration: 0.4}),
			},
		},
	},
	{
		ID: "stagger", Label: "STAGGER", Description: "Sequential cascades", Icon: "≡", Color: "pink",
		variants: []Variant{
			{
				ID: "cascade", Label: "Cascade Down", Ease: "back.out(1.7)", Duration: 0.5, Stagger: true,
				Code: `gsap.from(".items", {
  y: 40,
  opacity: 0,
  ease: "back.out(1.7)",
  duration: 0.5,
  stagger: 0.08
});`,
				Effect: from(items, props{motion.KeyY: num(40), motion.KeyOpacity: num(0)},
					opts{Ease: "back.out(1.7)", Duration: 0.5, Stagger: &motion.Stagger{Each: 0.08}}),
			},
			{
				ID: "scaleIn", Label: "Scale Stagger", Ease: "back.out(1.7)", Duration: 0.4, Stagger: true,
				Code: `gsap.from(".items", {
  scale: 0,
  opacity: 0,
  ease: "back.out(1.7)",
  duration: 0.4,
  stagger: 0.1
});`,
				Effect: from(items, props{motion.KeyScale: num(0), motion.KeyOpacity: num(0)},
					opts{Ease: "back.out(1.7)", Duration: 0.4, Stagger: &motion.Stagger{Each: 0.1}}),
			},
			{
				ID: "wave", Label: "Wave Effect", Ease: "sine.inOut", Duration: 0.6, Stagger: true,
				Code: `gsap.to(".items", {
  y: -20,
  ease: "sine.inOut",
  duration: 0.6,
  stagger: { each: 0.1, yoyo: true, repeat: 1 }
});`,
				Effect: to(items, props{motion.KeyY: num(-20)},
					opts{Ease: "sine.inOut", Duration: 0.6, Stagger: &motion.Stagger{Each: 0.1, Yoyo: true, Repeat: 1}}),
			},
		},
	},
}

// Mirrors that are the canonical effect plus a single go-and-return.
func init() {
	mirrored := map[string][]string{
		"transform": {"expand", "widthExpand", "rotate", "morphColor"},
		"hover":     {"subtle", "playful", "lift"},
		"threeD":    {"flip", "tilt"},
		"stagger":   {"cascade", "scaleIn"},
	}
	for ci := range categories {
		for _, id := range mirrored[categories[ci].ID] {
			for vi := range categories[ci].variants {
				v := &categories[ci].variants[vi]
				if v.ID == id {
					v.Mirror = yoyo(v.Effect)
				}
			}
		}
	}
}
