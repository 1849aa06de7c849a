package anki

// CardModel is an immutable Anki note type: a stable numeric ID, the ordered
// field names a note carries, and one or two card templates plus styling.
type CardModel struct {
	ID        int64
	Name      string
	Fields    []string
	Templates []CardTemplate
	CSS       string
}

// CardTemplate is one rendered card direction of a model.
type CardTemplate struct {
	Name string
	QFmt string
	AFmt string
}

// Model IDs are fixed so that repeated runs produce packages with a
// consistent identity. Anki only requires them to be unique within a
// collection.
const (
	basicModelID              int64 = 1 << 30
	basicAudioModelID         int64 = 1<<30 + 1
	bidirectionalModelID      int64 = 1<<30 + 2
	bidirectionalAudioModelID int64 = 1<<30 + 3
)

var (
	basicModel = &CardModel{
		ID:     basicModelID,
		Name:   "Basic Flashcard Model",
		Fields: []string{"Native", "Learning"},
		Templates: []CardTemplate{
			{
				Name: "Native to Learning",
				QFmt: `<div class="front">{{Native}}</div>`,
				AFmt: `{{FrontSide}}<hr id="answer"><div class="back">{{Learning}}</div>`,
			},
		},
		CSS: cardCSS,
	}

	basicAudioModel = &CardModel{
		ID:     basicAudioModelID,
		Name:   "Basic Flashcard Model with Audio",
		Fields: []string{"Native", "Learning", "Audio"},
		Templates: []CardTemplate{
			{
				Name: "Native to Learning",
				QFmt: `<div class="front">{{Native}}</div>`,
				AFmt: `{{FrontSide}}<hr id="answer"><div class="back">{{Learning}}<br>{{Audio}}</div>`,
			},
		},
		CSS: cardCSS,
	}

	bidirectionalModel = &CardModel{
		ID:     bidirectionalModelID,
		Name:   "Bidirectional Flashcard Model",
		Fields: []string{"Native", "Learning"},
		Templates: []CardTemplate{
			{
				Name: "Native to Learning",
				QFmt: `<div class="front">{{Native}}</div>`,
				AFmt: `{{FrontSide}}<hr id="answer"><div class="back">{{Learning}}</div>`,
			},
			{
				Name: "Learning to Native",
				QFmt: `<div class="front">{{Learning}}</div>`,
				AFmt: `{{FrontSide}}<hr id="answer"><div class="back">{{Native}}</div>`,
			},
		},
		CSS: cardCSS,
	}

	// Audio is attached only on the Native to Learning side so that the
	// learner hears the pronunciation when producing the learning language,
	// not when recognizing it.
	bidirectionalAudioModel = &CardModel{
		ID:     bidirectionalAudioModelID,
		Name:   "Bidirectional Flashcard Model with Audio",
		Fields: []string{"Native", "Learning", "Audio"},
		Templates: []CardTemplate{
			{
				Name: "Native to Learning",
				QFmt: `<div class="front">{{Native}}</div>`,
				AFmt: `{{FrontSide}}<hr id="answer"><div class="back">{{Learning}}<br>{{Audio}}</div>`,
			},
			{
				Name: "Learning to Native",
				QFmt: `<div class="front">{{Learning}}</div>`,
				AFmt: `{{FrontSide}}<hr id="answer"><div class="back">{{Native}}</div>`,
			},
		},
		CSS: cardCSS,
	}
)

// SelectModel returns the card model for the given audio/direction
// combination. Every combination is valid.
func SelectModel(hasAudio, bidirectional bool) *CardModel {
	switch {
	case hasAudio && bidirectional:
		return bidirectionalAudioModel
	case hasAudio:
		return basicAudioModel
	case bidirectional:
		return bidirectionalModel
	default:
		return basicModel
	}
}

const cardCSS = `.card {
  font-family: Arial, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #333;
  background-color: white;
}

.front, .back {
  padding: 20px;
}

.front {
  font-size: 28px;
  font-weight: bold;
  color: #2c3e50;
}

.back {
  font-size: 28px;
  color: #c0392b;
}

hr#answer {
  margin: 30px 0;
  border: 0;
  border-top: 1px solid #ecf0f1;
}`
