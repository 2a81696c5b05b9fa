package speaker

// findContexts is the catalogue of archaeological provenances an artifact
// can be attributed to. One is drawn at random per speaker invocation and
// recorded in the artifact metadata.
var findContexts = []string{
	"trade receipt scratched on wood",
	"boundary marker inscription",
	"tomb offering label",
	"short prayer fragment",
	"graffiti near a dock",
	"maker's mark on a tool",
	"temple administrative archives",
	"palace record rooms",
	"scribal school tablets",
	"private household archives",
	"merchant accounting rooms",
	"city gate offices",
	"royal chancellery archives",
	"provincial governor residences",
	"law court record rooms",
	"taxation registry offices",
	"warehouse inventory stores",
	"harbor customs offices",
	"military camp headquarters",
	"frontier fort garrisons",
	"canal maintenance offices",
	"irrigation control stations",
	"agricultural estate offices",
	"workshop accounting archives",
	"priesthood ritual storerooms",
	"oracle consultation chambers",
	"healer practice archives",
	"astronomical observation records",
	"omen interpretation libraries",
	"burial chamber deposits",
	"cemetery grave goods",
	"emergency hoard caches",
	"abandoned city ruins",
	"scribal workshop remains",
	"palace construction records",
	"diplomatic correspondence caches",
	"treaty tablet deposits",
	"census enumeration records",
	"ration distribution offices",
	"labor assignment records",
	"market regulation offices",
	"city wall guardhouses",
	"temple treasury vaults",
	"road checkpoint stations",
	"river transport offices",
	"judicial appeal archives",
}
