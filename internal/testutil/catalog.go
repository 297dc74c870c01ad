package testutil

// CatalogBook mirrors the demo application's book record.
type CatalogBook struct {
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	SubTitle    string `json:"subTitle"`
	Author      string `json:"author"`
	PublishDate string `json:"publish_date"`
	Publisher   string `json:"publisher"`
	Pages       int    `json:"pages"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

// Catalog is the fixed book list the fake API serves.
var Catalog = []CatalogBook{
	{
		ISBN: "9781449325862", Title: "Git Pocket Guide", SubTitle: "A Working Introduction",
		Author: "Richard E. Silverman", PublishDate: "2020-06-04T08:48:39.000Z", Publisher: "O'Reilly Media",
		Pages: 234, Description: "This pocket guide is the perfect on-the-job companion to Git.", Website: "http://chimera.labs.oreilly.com/books/1230000000561/index.html",
	},
	{
		ISBN: "9781449331818", Title: "Learning JavaScript Design Patterns", SubTitle: "A JavaScript and jQuery Developer's Guide",
		Author: "Addy Osmani", PublishDate: "2020-06-04T09:11:40.000Z", Publisher: "O'Reilly Media",
		Pages: 254, Description: "With Learning JavaScript Design Patterns, you'll learn how to write beautiful code.", Website: "http://www.addyosmani.com/resources/essentialjsdesignpatterns/book/",
	},
	{
		ISBN: "9781449337711", Title: "Designing Evolvable Web APIs with ASP.NET", SubTitle: "Harnessing the Power of the Web",
		Author: "Glenn Block et al.", PublishDate: "2020-06-04T09:12:43.000Z", Publisher: "O'Reilly Media",
		Pages: 238, Description: "Design and build Web APIs for a broad range of clients.", Website: "http://chimera.labs.oreilly.com/books/1234000001708/index.html",
	},
	{
		ISBN: "9781449365035", Title: "Speaking JavaScript", SubTitle: "An In-Depth Guide for Programmers",
		Author: "Axel Rauschmayer", PublishDate: "2014-02-01T00:00:00.000Z", Publisher: "O'Reilly Media",
		Pages: 460, Description: "Like it or not, JavaScript is everywhere these days.", Website: "http://speakingjs.com/",
	},
	{
		ISBN: "9781491904244", Title: "You Don't Know JS", SubTitle: "ES6 & Beyond",
		Author: "Kyle Simpson", PublishDate: "2015-12-27T00:00:00.000Z", Publisher: "O'Reilly Media",
		Pages: 278, Description: "No matter how much experience you have with JavaScript, odds are you don't fully understand the language.", Website: "https://github.com/getify/You-Dont-Know-JS/tree/master/es6%20&%20beyond",
	},
	{
		ISBN: "9781491950296", Title: "Programming JavaScript Applications", SubTitle: "Robust Web Architecture with Node, HTML5, and Modern JS Libraries",
		Author: "Eric Elliott", PublishDate: "2014-07-01T00:00:00.000Z", Publisher: "O'Reilly Media",
		Pages: 254, Description: "Take advantage of JavaScript's power to build robust web-scale or enterprise applications.", Website: "http://chimera.labs.oreilly.com/books/1234000000262/index.html",
	},
	{
		ISBN: "9781593275846", Title: "Eloquent JavaScript, Second Edition", SubTitle: "A Modern Introduction to Programming",
		Author: "Marijn Haverbeke", PublishDate: "2014-12-14T00:00:00.000Z", Publisher: "No Starch Press",
		Pages: 472, Description: "JavaScript lies at the heart of almost every modern web application.", Website: "http://eloquentjavascript.net/",
	},
	{
		ISBN: "9781593277574", Title: "Understanding ECMAScript 6", SubTitle: "The Definitive Guide for JavaScript Developers",
		Author: "Nicholas C. Zakas", PublishDate: "2016-09-03T00:00:00.000Z", Publisher: "No Starch Press",
		Pages: 352, Description: "ECMAScript 6 represents the biggest update to the core of JavaScript in the history of the language.", Website: "https://leanpub.com/understandinges6/read",
	},
}
