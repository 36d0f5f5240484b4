package tagtable

// tagList is the source of truth for the tag table; the offline table
// generator (tag_gen.go) carries a copy of these names in the same order.
// tagList is walked directly by init() below, so the shipped binary builds
// its table without a separate generation step wired into the build.
//
// Flag assignments are grounded on the HTML living standard's categorization
// of these elements, matching original_source/tagmap.c's tags.c companion
// (not present in original_source/ due to the retrieval pack's size cap).
var tagList = []struct {
	name  string
	flags Flags
}{
	{"html", 0},
	{"head", 0},
	{"body", 0},
	{"title", OptionalClose},
	{"meta", Empty},
	{"base", Empty},
	{"basefont", Empty},
	{"bgsound", Empty},
	{"link", Empty},
	{"style", Special},
	{"script", Special},
	{"noframes", 0},
	{"noscript", 0},
	{"template", Special},
	{"p", Block | Special | OptionalClose},
	{"address", Block | Special},
	{"article", Block | Special},
	{"aside", Block | Special},
	{"blockquote", Block | Special},
	{"center", Block | Special},
	{"details", Block | Special},
	{"dialog", Block | Special},
	{"dir", Block | Special},
	{"div", Block | Special},
	{"dl", Block | Special},
	{"fieldset", Block | Special},
	{"figcaption", Block | Special},
	{"figure", Block | Special},
	{"footer", Block | Special},
	{"header", Block | Special},
	{"hgroup", Block | Special},
	{"main", Block | Special},
	{"menu", Block | Special},
	{"nav", Block | Special},
	{"ol", Block | Special},
	{"section", Block | Special},
	{"summary", Block | Special},
	{"ul", Block | Special},
	{"li", Block | Special | OptionalClose},
	{"dd", Block | Special | OptionalClose},
	{"dt", Block | Special | OptionalClose},
	{"h1", Block | Special | Heading},
	{"h2", Block | Special | Heading},
	{"h3", Block | Special | Heading},
	{"h4", Block | Special | Heading},
	{"h5", Block | Special | Heading},
	{"h6", Block | Special | Heading},
	{"table", Block | Special},
	{"caption", Special},
	{"colgroup", Special},
	{"col", Empty | Special},
	{"tbody", Special | OptionalClose},
	{"thead", Special | OptionalClose},
	{"tfoot", Special | OptionalClose},
	{"tr", Special | OptionalClose},
	{"td", Special | OptionalClose},
	{"th", Special | OptionalClose},
	{"form", Block | Special},
	{"button", Special},
	{"select", Special},
	{"option", OptionalClose},
	{"optgroup", OptionalClose},
	{"textarea", Special},
	{"input", Empty},
	{"a", Format},
	{"b", Format},
	{"i", Format},
	{"em", Format},
	{"strong", Format},
	{"small", Format},
	{"s", Format},
	{"u", Format},
	{"tt", Format},
	{"big", Format},
	{"code", Format},
	{"font", Format},
	{"nobr", Format},
	{"applet", Special},
	{"marquee", 0},
	{"object", Special},
	{"math", Special},
	{"svg", Special},
	{"plaintext", Block | Special},
	{"pre", Block | Special},
	{"listing", Block | Special},
	{"br", Empty},
	{"area", Empty},
	{"embed", Empty | Special},
	{"img", Empty | Special},
	{"keygen", Empty},
	{"wbr", Empty},
	{"rb", OptionalClose},
	{"rp", OptionalClose},
	{"rt", OptionalClose},
	{"rtc", OptionalClose},
	{"frameset", Special},
	{"frame", Empty | Special},
	{"noembed", 0},
	{"iframe", Special},
	{"xmp", Block | Special},
	{"hr", Empty | Block | Special},
}

// Named IDs for tags the dispatcher switches on directly. Computed at
// init() via the same hash/probe path TagID uses, so their values always
// match whatever slot the table generator assigned.
var (
	Html, Head, Body, Title, Meta, Base, Basefont, Bgsound, Link        ID
	Style, Script, Noframes, Noscript, Template                        ID
	P, Address, Article, Aside, Blockquote, Center, Details, Dialog     ID
	Dir, Div, Dl, Fieldset, Figcaption, Figure, Footer, Header, Hgroup  ID
	Main, Menu, Nav, Ol, Section, Summary, Ul, Li, Dd, Dt               ID
	H1, H2, H3, H4, H5, H6                                              ID
	Table, Caption, Colgroup, Col, Tbody, Thead, Tfoot, Tr, Td, Th      ID
	Form, Button, Select, Option, Optgroup, Textarea, Input             ID
	A, B, I, Em, Strong, Small, S, U, Tt, Big, Code, Font, Nobr          ID
	Applet, Marquee, Object, Math, Svg, Plaintext, Pre, Listing          ID
	Br, Area, Embed, Img, Keygen, Wbr, Rb, Rp, Rt, Rtc                   ID
	Frameset, Frame, Noembed, Iframe, Xmp, Hr                            ID
)

func init() {
	for _, t := range tagList {
		insert(t.name, t.flags)
	}

	Html = TagID("html")
	Head = TagID("head")
	Body = TagID("body")
	Title = TagID("title")
	Meta = TagID("meta")
	Base = TagID("base")
	Basefont = TagID("basefont")
	Bgsound = TagID("bgsound")
	Link = TagID("link")
	Style = TagID("style")
	Script = TagID("script")
	Noframes = TagID("noframes")
	Noscript = TagID("noscript")
	Template = TagID("template")
	P = TagID("p")
	Address = TagID("address")
	Article = TagID("article")
	Aside = TagID("aside")
	Blockquote = TagID("blockquote")
	Center = TagID("center")
	Details = TagID("details")
	Dialog = TagID("dialog")
	Dir = TagID("dir")
	Div = TagID("div")
	Dl = TagID("dl")
	Fieldset = TagID("fieldset")
	Figcaption = TagID("figcaption")
	Figure = TagID("figure")
	Footer = TagID("footer")
	Header = TagID("header")
	Hgroup = TagID("hgroup")
	Main = TagID("main")
	Menu = TagID("menu")
	Nav = TagID("nav")
	Ol = TagID("ol")
	Section = TagID("section")
	Summary = TagID("summary")
	Ul = TagID("ul")
	Li = TagID("li")
	Dd = TagID("dd")
	Dt = TagID("dt")
	H1 = TagID("h1")
	H2 = TagID("h2")
	H3 = TagID("h3")
	H4 = TagID("h4")
	H5 = TagID("h5")
	H6 = TagID("h6")
	Table = TagID("table")
	Caption = TagID("caption")
	Colgroup = TagID("colgroup")
	Col = TagID("col")
	Tbody = TagID("tbody")
	Thead = TagID("thead")
	Tfoot = TagID("tfoot")
	Tr = TagID("tr")
	Td = TagID("td")
	Th = TagID("th")
	Form = TagID("form")
	Button = TagID("button")
	Select = TagID("select")
	Option = TagID("option")
	Optgroup = TagID("optgroup")
	Textarea = TagID("textarea")
	Input = TagID("input")
	A = TagID("a")
	B = TagID("b")
	I = TagID("i")
	Em = TagID("em")
	Strong = TagID("strong")
	Small = TagID("small")
	S = TagID("s")
	U = TagID("u")
	Tt = TagID("tt")
	Big = TagID("big")
	Code = TagID("code")
	Font = TagID("font")
	Nobr = TagID("nobr")
	Applet = TagID("applet")
	Marquee = TagID("marquee")
	Object = TagID("object")
	Math = TagID("math")
	Svg = TagID("svg")
	Plaintext = TagID("plaintext")
	Pre = TagID("pre")
	Listing = TagID("listing")
	Br = TagID("br")
	Area = TagID("area")
	Embed = TagID("embed")
	Img = TagID("img")
	Keygen = TagID("keygen")
	Wbr = TagID("wbr")
	Rb = TagID("rb")
	Rp = TagID("rp")
	Rt = TagID("rt")
	Rtc = TagID("rtc")
	Frameset = TagID("frameset")
	Frame = TagID("frame")
	Noembed = TagID("noembed")
	Iframe = TagID("iframe")
	Xmp = TagID("xmp")
	Hr = TagID("hr")
}
